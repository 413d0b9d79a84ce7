package internal

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goplus/luasrc/lua"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the Lua versions that can be built",
	Args:  cobra.NoArgs,
	RunE:  runVariants,
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRELEASE\tSOURCE DIR\tLIBRARY")
	for _, v := range lua.Versions() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v, v.Release(), v.SourceDir(), v.LibName())
	}
	return w.Flush()
}
