package main

import (
	"fmt"
	"strings"

	"github.com/openmotif/motif"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of motif",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("motif version %s\n", strings.TrimSpace(motif.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
