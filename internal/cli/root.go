// Package cli wires the csimple command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/routegen/csimple/internal/logging"
)

var (
	cfgFile   string
	verbosity int
	quiet     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "csimple",
	Short: "Compile csimple expressions embedded in route sources",
	Long: `csimple scans a project for csimple expression scripts embedded in Java
route builder classes and XML route documents, compiles each script into a
generated Java source file implementing the csimple evaluation contract, and
writes a resource listing all generated classes for runtime discovery.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbosity, quiet)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <project-dir>/csimple.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v debug, -vv trace)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors and disable progress output")
}
