package main

import (
	"fmt"
	"os"

	"github.com/openmotif/motif/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a component manifest without serving",
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("manifest")
		if path == "" {
			fmt.Println("--manifest is required")
			os.Exit(1)
		}

		m, err := manifest.Load(path)
		if err != nil {
			fmt.Printf("Invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK: %d component(s)\n", len(m.Components))
		for name := range m.Components {
			fmt.Printf("  - %s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
