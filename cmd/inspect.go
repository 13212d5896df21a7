package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"csvtable/internal/column"
	"csvtable/internal/ingest"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Detect and print the column schema of delimited files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions(args[0])
		if err != nil {
			return err
		}

		for _, file := range args {
			fileOpts := opts
			if file != args[0] {
				// Same parse settings, different file identity.
				fileOpts = opts.CloneForFile(file)
			}
			t, err := ingest.Read(cmd.Context(), fileOpts)
			if err != nil {
				return err
			}

			fmt.Printf("%s (%d rows)\n", t.Name(), t.RowCount())
			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "  COLUMN\tTYPE\tFORMAT")
			for _, c := range t.Columns() {
				fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Name(), c.Type(), formatOf(c))
			}
			w.Flush()
		}
		return nil
	},
}

// formatOf returns the locked-in layout for temporal columns, "" otherwise.
func formatOf(c column.Column) string {
	switch tc := c.(type) {
	case *column.DateColumn:
		return tc.Format().Layout()
	case *column.TimeColumn:
		return tc.Format().Layout()
	case *column.DateTimeColumn:
		return tc.Format().Layout()
	}
	return ""
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}
