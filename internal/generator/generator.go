// Package generator runs the code generation pipeline: scan the source
// roots, extract csimple sites from Java and XML route sources, compile each
// site into a generated unit, and persist the units plus the class-listing
// manifest. One Generator value serves one project; each Run is a full pass.
package generator

import (
	"context"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/routegen/csimple/internal/csimple"
	"github.com/routegen/csimple/internal/extract"
	"github.com/routegen/csimple/internal/logging"
	"github.com/routegen/csimple/internal/output"
	"github.com/routegen/csimple/internal/scan"
)

// Config wires the pipeline: where to scan, where to write, what to include.
// All paths are resolved by the caller; the generator treats them verbatim.
type Config struct {
	// Roots are the main source directories to scan.
	Roots []string
	// TestRoots are scanned in addition when IncludeTests is set.
	TestRoots []string

	IncludeJava  bool
	IncludeXML   bool
	IncludeTests bool

	// Includes and Excludes filter candidate files; entries may be globs
	// or regular expressions.
	Includes []string
	Excludes []string

	// ResourceDir is where the optional csimple language configuration
	// file lives.
	ResourceDir string
	// OutputDir receives the generated Java source units.
	OutputDir string
	// OutputResourceDir receives the generated manifest resource.
	OutputResourceDir string
}

// Stats reports what one run scanned, compiled, and wrote.
type Stats struct {
	JavaFiles    int
	XMLFiles     int
	Sites        int
	Units        int
	FilesWritten int
	Duration     time.Duration
}

// Generator executes generation runs over one project.
type Generator struct {
	cfg      Config
	scanner  *scan.Scanner
	java     *extract.JavaExtractor
	xml      *extract.XMLExtractor
	progress ProgressReporter
	log      zerolog.Logger
}

// New creates a Generator. A nil progress reporter disables reporting.
func New(cfg Config, progress ProgressReporter) (*Generator, error) {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	scanner, err := scan.New(scan.Options{
		Roots:        cfg.Roots,
		TestRoots:    cfg.TestRoots,
		IncludeJava:  cfg.IncludeJava,
		IncludeXML:   cfg.IncludeXML,
		IncludeTests: cfg.IncludeTests,
		Includes:     cfg.Includes,
		Excludes:     cfg.Excludes,
	})
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:      cfg,
		scanner:  scanner,
		java:     extract.NewJavaExtractor(),
		xml:      extract.NewXMLExtractor(),
		progress: progress,
		log:      logging.Logger("generator"),
	}, nil
}

// Run executes one full generation pass. Extraction failures in single files
// are logged and skipped; configuration, compilation, and write failures
// abort the run.
func (g *Generator) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()

	langCfg, err := csimple.LoadConfig(filepath.Join(g.cfg.ResourceDir, csimple.ConfigFileName))
	if err != nil {
		return nil, err
	}

	g.progress.OnDiscoveryStart()
	files, err := g.scanner.Scan()
	if err != nil {
		return nil, err
	}
	g.progress.OnDiscoveryComplete(len(files.Java), len(files.XML))

	stats := &Stats{
		JavaFiles: len(files.Java),
		XMLFiles:  len(files.XML),
	}

	sites, err := g.extractAll(ctx, files)
	if err != nil {
		return nil, err
	}
	stats.Sites = len(sites)

	if len(sites) == 0 {
		stats.Duration = time.Since(start)
		g.progress.OnComplete(stats)
		return stats, nil
	}
	g.log.Info().Int("count", len(sites)).Msg("discovered csimple expressions")

	compiler := csimple.NewCompiler(langCfg)
	units := make([]*csimple.GeneratedUnit, 0, len(sites))
	for _, site := range sites {
		unit, err := compiler.Compile(site)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	stats.Units = len(units)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	manifest := output.NewManifest()
	for _, unit := range units {
		path := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(unit.Path()))
		wrote, err := output.UpdateFile(path, []byte(unit.Code))
		if err != nil {
			return nil, err
		}
		if wrote {
			stats.FilesWritten++
			g.log.Info().Str("file", unit.Path()).Msg("generated csimple source code file")
		}
		manifest.Add(unit.FQN)
	}

	wrote, err := manifest.Write(g.cfg.OutputResourceDir, csimple.GeneratedHeader)
	if err != nil {
		return nil, err
	}
	if wrote {
		stats.FilesWritten++
		g.log.Info().Str("file", output.ManifestPath).Msg("generated csimple resource file")
	}

	stats.Duration = time.Since(start)
	g.progress.OnComplete(stats)
	return stats, nil
}

// extractAll fans extraction out across files and merges the results back in
// scan order, so per-owner sequence numbers never depend on goroutine
// scheduling. Files that fail to parse are logged and contribute nothing.
func (g *Generator) extractAll(ctx context.Context, files *scan.Result) ([]extract.Site, error) {
	type task struct {
		path      string
		extractor extract.Extractor
	}
	tasks := make([]task, 0, len(files.Java)+len(files.XML))
	for _, path := range files.Java {
		tasks = append(tasks, task{path, g.java})
	}
	for _, path := range files.XML {
		tasks = append(tasks, task{path, g.xml})
	}

	g.progress.OnExtractionStart(len(tasks))

	results := make([][]extract.Site, len(tasks))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range tasks {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sites, err := t.extractor.Extract(ctx, t.path)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// one malformed file never aborts the run
				g.log.Warn().Err(err).Str("file", t.path).Msg("skipping route source file")
				g.progress.OnFileExtracted(t.path)
				return nil
			}
			results[i] = sites
			g.progress.OnFileExtracted(t.path)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	var sites []extract.Site
	for _, r := range results {
		sites = append(sites, r...)
	}
	return sites, nil
}
