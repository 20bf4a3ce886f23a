package output

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
)

// ManifestPath is the well-known resource listing all generated csimple
// classes for runtime discovery, relative to the output resource directory.
const ManifestPath = "META-INF/services/org/apache/camel/csimple.properties"

// Manifest accumulates the identities of generated units across one run.
type Manifest struct {
	fqns map[string]bool
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{fqns: map[string]bool{}}
}

// Add records one generated identity. Duplicates collapse.
func (m *Manifest) Add(fqn string) {
	m.fqns[fqn] = true
}

// Len returns the number of distinct identities recorded.
func (m *Manifest) Len() int {
	return len(m.fqns)
}

// Render serializes the listing: a generated-file header comment followed by
// one identity per line, sorted for deterministic output.
func (m *Manifest) Render(header string) []byte {
	fqns := make([]string, 0, len(m.fqns))
	for fqn := range m.fqns {
		fqns = append(fqns, fqn)
	}
	sort.Strings(fqns)

	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n", header)
	for _, fqn := range fqns {
		b.WriteString(fqn)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// Write persists the manifest under dir, or does nothing when no units were
// recorded: absence, not an empty file, is the no-sites outcome. It reports
// whether the file content actually changed.
func (m *Manifest) Write(dir, header string) (bool, error) {
	if m.Len() == 0 {
		return false, nil
	}
	path := filepath.Join(dir, filepath.FromSlash(ManifestPath))
	return UpdateFile(path, m.Render(header))
}
