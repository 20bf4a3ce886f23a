package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/routegen/csimple/internal/generator"
)

// CLIProgressReporter implements progress reporting with a progress bar.
type CLIProgressReporter struct {
	quiet   bool
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet: quiet,
	}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	fmt.Println("Discovering route sources...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(javaFiles, xmlFiles int) {
	if c.quiet {
		return
	}
	fmt.Printf("Scanning %d Java files and %d XML files\n", javaFiles, xmlFiles)
}

func (c *CLIProgressReporter) OnExtractionStart(totalFiles int) {
	if c.quiet || totalFiles == 0 {
		return
	}

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Extracting expressions"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileExtracted(fileName string) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *generator.Stats) {
	if c.quiet {
		return
	}

	fmt.Println()
	fmt.Printf("✓ Generation complete: %d csimple expressions from %d files in %.1fs\n",
		stats.Sites, stats.JavaFiles+stats.XMLFiles, stats.Duration.Seconds())
	fmt.Printf("  Generated units: %d\n", stats.Units)
	fmt.Printf("  Files written:   %d\n", stats.FilesWritten)
}
