package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flockgrid/go-grid-flocking/pkg/flock"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "flockcli",
		Short: "Grid flocking simulation without a graphical window",
		Long: `flockcli drives the grid flocking simulation from the terminal.

The simulation evolves a grid of cells whose color doubles as position
under the classic boids rules (separation, alignment, cohesion). Use
'run' for headless stepping with statistics, or 'view' for a live
terminal rendering.`,
	}

	rootCmd.PersistentFlags().String("config", "", "path to a JSON or YAML config file")
	rootCmd.PersistentFlags().String("schema", "config/flockgrid.schema.json", "path to the config JSON schema")

	rootCmd.AddCommand(
		newRunCmd(),
		newViewCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("flockcli version %s\n", version)
		},
	}
}

// loadConfig resolves the effective configuration from the persistent
// flags, falling back to the built-in defaults when no file is given.
func loadConfig(cmd *cobra.Command) (*flock.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	schemaFile, _ := cmd.Flags().GetString("schema")

	if configFile == "" {
		return flock.DefaultConfig(), nil
	}
	return flock.LoadConfig(configFile, schemaFile)
}
