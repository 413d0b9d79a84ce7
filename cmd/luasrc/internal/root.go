package internal

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "luasrc",
	Short: "luasrc builds Lua as a static library",
	Long:  `luasrc compiles the Lua interpreter sources into a static library for a target triple and publishes its headers.`,
}

// Execute runs the luasrc command line and exits the process on failure.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
