package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "motif",
	Short: "Motif is a remote-manipulation bridge for live UI primitive trees",
	Long:  `Motif serves a component-tree bridge that external controllers (design tools, AI agents, devtools) use to inspect and mutate running UI trees.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("manifest", "", "YAML manifest of initial components")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}
