// Package csimple compiles csimple scripts into generated Java source units.
// It hosts the optional language configuration (custom imports and alias
// substitutions), the script-to-Java expression compiler, and the source
// renderer producing the final unit text.
package csimple

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/routegen/csimple/internal/logging"
)

// ConfigFileName is the well-known file looked up under the project's
// resource directory.
const ConfigFileName = "camel-csimple.properties"

// Config carries the optional csimple language configuration: import
// statements injected into every generated unit and alias substitutions
// applied to scripts before compilation.
type Config struct {
	// Imports holds the configured import statements verbatim, sorted.
	Imports []string
	// Aliases maps shorthand tokens to their expansions.
	Aliases map[string]string
}

// LoadConfig reads the configuration file at path. A missing file is not an
// error: compilation then runs with no custom imports and no aliases. A file
// that exists but cannot be read aborts the run.
//
// The format is line based: `#` starts a comment, lines starting with
// `import ` join the import set verbatim, and `key=value` lines become alias
// pairs with both sides trimmed. Later duplicate keys overwrite earlier
// ones. Anything else is ignored.
func LoadConfig(path string) (Config, error) {
	cfg := Config{Aliases: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot load configuration %s: %w", path, err)
	}

	imports := make(map[string]bool)
	importCount := 0
	aliasCount := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "import ") {
			if !imports[line] {
				imports[line] = true
				cfg.Imports = append(cfg.Imports, line)
			}
			importCount++
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		cfg.Aliases[key] = value
		aliasCount++
	}
	sort.Strings(cfg.Imports)

	if importCount > 0 || aliasCount > 0 {
		log := logging.Logger("csimple")
		log.Info().
			Int("imports", importCount).
			Int("aliases", aliasCount).
			Str("file", path).
			Msg("loaded csimple language configuration")
	}
	return cfg, nil
}
