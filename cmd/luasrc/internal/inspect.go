package internal

import (
	"github.com/spf13/cobra"

	"github.com/goplus/luasrc/lua"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect <out-dir>",
	Short: "Print the link metadata of a previous build",
	Long:  `Inspect reads the manifest left in an output directory by a successful build and prints its link metadata.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "cargo", "Metadata format: cargo, cgo or pkg-config")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := lua.ParseFormat(inspectFormat)
	if err != nil {
		return err
	}
	artifacts, err := lua.LoadArtifacts(args[0])
	if err != nil {
		return err
	}
	return artifacts.WriteMetadata(cmd.OutOrStdout(), format)
}
