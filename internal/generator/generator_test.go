package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routegen/csimple/internal/csimple"
	"github.com/routegen/csimple/internal/output"
)

// Test Plan for Generator:
// - Run compiles a Java predicate site into a generated unit and manifest
// - Run reports scanned, compiled and written counts in Stats
// - A second run over unchanged sources writes nothing
// - A project without csimple sites produces no output at all
// - A script that cannot be compiled aborts the run before any write
// - Files that fail to parse are skipped, the run continues
// - Document sites compile under the synthetic owner
// - The language configuration contributes imports and aliases
// - Progress reporting sees discovery, extraction and completion
// - A cancelled context aborts the run
// - Invalid filter patterns fail construction

const myRoutesSource = `package com.example;

public class MyRoutes extends RouteBuilder {
    public void configure() {
        from("direct:start")
            .choice()
                .when(csimple("${header.age} > 18"))
                    .to("mock:adult");
    }
}
`

func TestGenerator_Run_GeneratesPredicateUnit(t *testing.T) {
	t.Parallel()

	project := newTestProject(t)
	project.writeSource(t, "src/main/java/com/example/MyRoutes.java", myRoutesSource)

	reporter := &recordingReporter{}
	gen, err := New(project.config(), reporter)
	require.NoError(t, err)

	stats, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.JavaFiles)
	assert.Equal(t, 0, stats.XMLFiles)
	assert.Equal(t, 1, stats.Sites)
	assert.Equal(t, 1, stats.Units)
	assert.Equal(t, 2, stats.FilesWritten, "one unit plus the manifest")

	unitPath := filepath.Join(project.outputDir, "com", "example", "MyRoutes$$Csimple1.java")
	code := readFile(t, unitPath)
	assert.Contains(t, code, "package com.example;")
	assert.Contains(t, code, "public class MyRoutes$$Csimple1 extends org.apache.camel.language.csimple.CSimpleSupport {")
	assert.Contains(t, code, "public boolean matches(CamelContext context, Exchange exchange, Message message, Object body) throws Exception {")
	assert.Contains(t, code, `return isGreaterThan(exchange, header(message, "age"), 18);`)

	manifest := readFile(t, filepath.Join(project.outputResourceDir, filepath.FromSlash(output.ManifestPath)))
	assert.Equal(t,
		"# Generated by camel build tools - do NOT edit this file!\ncom.example.MyRoutes$$Csimple1\n",
		manifest)

	// progress saw the whole pipeline
	assert.Equal(t, 1, reporter.discoveryStarts)
	assert.Equal(t, 1, reporter.javaFiles)
	assert.Equal(t, 0, reporter.xmlFiles)
	assert.Equal(t, 1, reporter.extractionTotal)
	assert.Len(t, reporter.filesExtracted, 1)
	require.NotNil(t, reporter.completed)
	assert.Equal(t, stats, reporter.completed)
}

func TestGenerator_Run_SecondPassWritesNothing(t *testing.T) {
	t.Parallel()

	project := newTestProject(t)
	project.writeSource(t, "src/main/java/com/example/MyRoutes.java", myRoutesSource)

	gen, err := New(project.config(), nil)
	require.NoError(t, err)

	stats, err := gen.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.FilesWritten)

	stats, err = gen.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Units)
	assert.Equal(t, 0, stats.FilesWritten, "unchanged sources must not be rewritten")
}

func TestGenerator_Run_NoSites(t *testing.T) {
	t.Parallel()

	project := newTestProject(t)
	project.writeSource(t, "src/main/java/com/example/Empty.java", `package com.example;

public class Empty extends RouteBuilder {
    public void configure() {
        from("direct:start").to("mock:out");
    }
}
`)

	gen, err := New(project.config(), nil)
	require.NoError(t, err)

	stats, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.JavaFiles)
	assert.Equal(t, 0, stats.Sites)
	assert.Equal(t, 0, stats.FilesWritten)

	_, err = os.Stat(project.outputDir)
	assert.True(t, os.IsNotExist(err), "no generated sources directory should exist")
	_, err = os.Stat(filepath.Join(project.outputResourceDir, filepath.FromSlash(output.ManifestPath)))
	assert.True(t, os.IsNotExist(err), "no manifest should exist")
}

func TestGenerator_Run_CompileErrorAborts(t *testing.T) {
	t.Parallel()

	project := newTestProject(t)
	project.writeSource(t, "src/main/java/com/example/Broken.java", `package com.example;

public class Broken extends RouteBuilder {
    public void configure() {
        from("direct:start").setBody(csimple("${wat}"));
    }
}
`)

	gen, err := New(project.config(), nil)
	require.NoError(t, err)

	_, err = gen.Run(context.Background())
	require.Error(t, err)

	var compileErr *csimple.CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Contains(t, compileErr.Reason, "unknown csimple function")

	_, statErr := os.Stat(project.outputDir)
	assert.True(t, os.IsNotExist(statErr), "a failed run must not write units")
}

func TestGenerator_Run_SkipsUnparseableFiles(t *testing.T) {
	t.Parallel()

	project := newTestProject(t)
	project.writeSource(t, "src/main/java/com/example/MyRoutes.java", myRoutesSource)
	project.writeSource(t, "src/main/resources/broken.xml", "<routes><route>")

	gen, err := New(project.config(), nil)
	require.NoError(t, err)

	stats, err := gen.Run(context.Background())
	require.NoError(t, err, "one malformed file never aborts the run")

	assert.Equal(t, 1, stats.JavaFiles)
	assert.Equal(t, 1, stats.XMLFiles)
	assert.Equal(t, 1, stats.Sites, "only the parseable file contributes sites")
}

func TestGenerator_Run_DocumentSitesUseSyntheticOwner(t *testing.T) {
	t.Parallel()

	project := newTestProject(t)
	project.writeSource(t, "src/main/resources/routes.xml", `<routes>
    <route>
        <from uri="direct:start"/>
        <choice>
            <when>
                <csimple>${header.age} &gt; 18</csimple>
                <to uri="mock:adult"/>
            </when>
        </choice>
    </route>
</routes>
`)

	gen, err := New(project.config(), nil)
	require.NoError(t, err)

	stats, err := gen.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Units)

	unitPath := filepath.Join(project.outputDir,
		"org", "apache", "camel", "language", "csimple", "XmlRouteBuilder$$Csimple1.java")
	code := readFile(t, unitPath)
	assert.Contains(t, code, "package org.apache.camel.language.csimple;")
	assert.Contains(t, code, "public boolean matches(")

	manifest := readFile(t, filepath.Join(project.outputResourceDir, filepath.FromSlash(output.ManifestPath)))
	assert.Contains(t, manifest, "org.apache.camel.language.csimple.XmlRouteBuilder$$Csimple1")
}

func TestGenerator_Run_AppliesLanguageConfiguration(t *testing.T) {
	t.Parallel()

	project := newTestProject(t)
	project.writeSource(t, "src/main/resources/camel-csimple.properties", `import com.acme.util.Ages;
isAdult=${header.age} >= 21
`)
	project.writeSource(t, "src/main/java/com/example/MyRoutes.java", `package com.example;

public class MyRoutes extends RouteBuilder {
    public void configure() {
        from("direct:start")
            .choice()
                .when(csimple("isAdult"))
                    .to("mock:adult");
    }
}
`)

	gen, err := New(project.config(), nil)
	require.NoError(t, err)

	stats, err := gen.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Units)

	code := readFile(t, filepath.Join(project.outputDir, "com", "example", "MyRoutes$$Csimple1.java"))
	assert.Contains(t, code, "import com.acme.util.Ages;")
	assert.Contains(t, code, `private static final String TEXT = "${header.age} >= 21";`)
	assert.Contains(t, code, `return isGreaterThanOrEqualTo(exchange, header(message, "age"), 21);`)
}

func TestGenerator_Run_CancelledContext(t *testing.T) {
	t.Parallel()

	project := newTestProject(t)
	project.writeSource(t, "src/main/java/com/example/MyRoutes.java", myRoutesSource)

	gen, err := New(project.config(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = gen.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_New_InvalidPattern(t *testing.T) {
	t.Parallel()

	cfg := newTestProject(t).config()
	cfg.Includes = []string{"["}

	_, err := New(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid include pattern")
}

// Helper functions

type testProject struct {
	dir               string
	outputDir         string
	outputResourceDir string
}

func newTestProject(t *testing.T) *testProject {
	t.Helper()

	dir := t.TempDir()
	return &testProject{
		dir:               dir,
		outputDir:         filepath.Join(dir, "src", "generated", "java"),
		outputResourceDir: filepath.Join(dir, "src", "generated", "resources"),
	}
}

func (p *testProject) config() Config {
	return Config{
		Roots: []string{
			filepath.Join(p.dir, "src", "main", "java"),
			filepath.Join(p.dir, "src", "main", "resources"),
		},
		TestRoots: []string{
			filepath.Join(p.dir, "src", "test", "java"),
			filepath.Join(p.dir, "src", "test", "resources"),
		},
		IncludeJava:       true,
		IncludeXML:        true,
		ResourceDir:       filepath.Join(p.dir, "src", "main", "resources"),
		OutputDir:         p.outputDir,
		OutputResourceDir: p.outputResourceDir,
	}
}

func (p *testProject) writeSource(t *testing.T, relPath, content string) {
	t.Helper()

	path := filepath.Join(p.dir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

type recordingReporter struct {
	discoveryStarts int
	javaFiles       int
	xmlFiles        int
	extractionTotal int
	filesExtracted  []string
	completed       *Stats
}

func (r *recordingReporter) OnDiscoveryStart() {
	r.discoveryStarts++
}

func (r *recordingReporter) OnDiscoveryComplete(javaFiles, xmlFiles int) {
	r.javaFiles = javaFiles
	r.xmlFiles = xmlFiles
}

func (r *recordingReporter) OnExtractionStart(totalFiles int) {
	r.extractionTotal = totalFiles
}

func (r *recordingReporter) OnFileExtracted(fileName string) {
	r.filesExtracted = append(r.filesExtracted, fileName)
}

func (r *recordingReporter) OnComplete(stats *Stats) {
	r.completed = stats
}
