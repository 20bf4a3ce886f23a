package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/routegen/csimple/internal/config"
	"github.com/routegen/csimple/internal/generator"
	"github.com/routegen/csimple/internal/logging"
)

var (
	projectDirFlag        string
	watchFlag             bool
	sourcesFlag           []string
	includeJavaFlag       bool
	includeXMLFlag        bool
	includeTestFlag       bool
	includePatternsFlag   []string
	excludePatternsFlag   []string
	outputDirFlag         string
	outputResourceDirFlag string
	resourceDirFlag       string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Java sources for embedded csimple expressions",
	Long: `Generate scans the project's route sources for csimple expressions,
compiles each expression into a Java source file implementing the csimple
evaluation contract, and writes a resource file listing every generated
class.

Sources are scanned under the configured source roots (by default
src/main/java and src/main/resources). Generated files are only rewritten
when their content changes, so repeated runs over unchanged sources leave
the output directories untouched.

Examples:
  # Generate for the current directory
  csimple generate

  # Include test sources and watch for changes
  csimple generate --include-test --watch

  # Restrict scanning to specific route classes
  csimple generate --include '**/*Route*.java'
`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&projectDirFlag, "project-dir", "p", ".", "project directory to scan")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "watch route sources and regenerate on change")
	generateCmd.Flags().StringSliceVar(&sourcesFlag, "source", nil, "source roots to scan, relative to the project directory")
	generateCmd.Flags().BoolVar(&includeJavaFlag, "include-java", true, "scan Java route builder sources")
	generateCmd.Flags().BoolVar(&includeXMLFlag, "include-xml", true, "scan XML route documents")
	generateCmd.Flags().BoolVar(&includeTestFlag, "include-test", false, "scan test source roots as well")
	generateCmd.Flags().StringSliceVar(&includePatternsFlag, "include", nil, "only scan files matching these patterns (glob or regexp)")
	generateCmd.Flags().StringSliceVar(&excludePatternsFlag, "exclude", nil, "skip files matching these patterns (glob or regexp)")
	generateCmd.Flags().StringVar(&outputDirFlag, "output-dir", "", "directory for generated Java sources")
	generateCmd.Flags().StringVar(&outputResourceDirFlag, "output-resource-dir", "", "directory for the generated resource file")
	generateCmd.Flags().StringVar(&resourceDirFlag, "resource-dir", "", "directory holding camel-csimple.properties")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	projectDir, err := filepath.Abs(projectDirFlag)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}

	var cfg *config.Config
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(projectDir, cfgFile)
	} else {
		cfg, err = config.LoadFromDir(projectDir)
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlagOverrides(cmd, cfg)

	gen, err := generator.New(cfg.ToGeneratorConfig(projectDir), NewCLIProgressReporter(quiet))
	if err != nil {
		return err
	}

	if watchFlag {
		// a broken script on the first pass is not fatal here: the
		// watcher stays up so fixing the source retriggers generation
		if _, err := gen.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("generation cancelled")
			}
			logging.Logger("cli").Error().Err(err).Msg("generation failed")
		}

		watcher, err := generator.NewWatcher(gen)
		if err != nil {
			return fmt.Errorf("failed to start watch mode: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Watch(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("watch mode failed: %w", err)
		}
		return nil
	}

	if _, err := gen.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("generation cancelled")
		}
		return err
	}
	return nil
}

// applyFlagOverrides lets explicit command line flags win over the config
// file and environment variables.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("source") {
		cfg.Sources = sourcesFlag
	}
	if cmd.Flags().Changed("include-java") {
		cfg.IncludeJava = includeJavaFlag
	}
	if cmd.Flags().Changed("include-xml") {
		cfg.IncludeXML = includeXMLFlag
	}
	if cmd.Flags().Changed("include-test") {
		cfg.IncludeTests = includeTestFlag
	}
	if cmd.Flags().Changed("include") {
		cfg.Includes = includePatternsFlag
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Excludes = excludePatternsFlag
	}
	if outputDirFlag != "" {
		cfg.OutputDir = outputDirFlag
	}
	if outputResourceDirFlag != "" {
		cfg.OutputResourceDir = outputResourceDirFlag
	}
	if resourceDirFlag != "" {
		cfg.ResourceDir = resourceDirFlag
	}
}
