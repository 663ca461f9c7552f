package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conchshell/conch"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of conch",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("conch version %s\n", strings.TrimSpace(conch.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
