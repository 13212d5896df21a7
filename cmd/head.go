package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"csvtable/internal/ingest"
)

var headRows int

var headCmd = &cobra.Command{
	Use:   "head <file>",
	Short: "Parse a delimited file and print its first rows, typed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions(args[0])
		if err != nil {
			return err
		}
		t, err := ingest.Read(cmd.Context(), opts)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		names := make([]string, t.ColumnCount())
		for i, c := range t.Columns() {
			names[i] = fmt.Sprintf("%s(%s)", c.Name(), c.Type())
		}
		fmt.Fprintln(w, strings.Join(names, "\t"))

		n := headRows
		if t.RowCount() < n {
			n = t.RowCount()
		}
		for i := 0; i < n; i++ {
			fmt.Fprintln(w, strings.Join(t.Row(i), "\t"))
		}
		return w.Flush()
	},
}

func init() {
	headCmd.Flags().IntVarP(&headRows, "rows", "n", 10, "number of rows to print")
	RootCmd.AddCommand(headCmd)
}
