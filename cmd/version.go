package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/caprate-cli/internal/model"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tool version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("caprate %s\n", model.ToolVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
