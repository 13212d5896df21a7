package cmd

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"csvtable/internal/ingest"
	"csvtable/internal/pgload"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>...",
	Short: "Parse delimited files and bulk-load them into PostgreSQL",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn := viper.GetString("database.dsn")
		if dsn == "" {
			return fmt.Errorf("database.dsn is required (via --dsn, config file, or CSVTABLE_DATABASE_DSN)")
		}

		ctx := cmd.Context()
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}

		opts, err := buildOptions(args[0])
		if err != nil {
			return err
		}

		uiprogress.Start()
		bar := uiprogress.AddBar(len(args)).AppendCompleted().PrependElapsed()
		current := ""
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("%-20.20s", current)
		})

		var total int64
		for i, file := range args {
			current = file
			fileOpts := opts
			if i > 0 {
				fileOpts = opts.CloneForFile(file)
			}
			t, err := ingest.Read(ctx, fileOpts)
			if err != nil {
				uiprogress.Stop()
				return err
			}
			res, err := pgload.Load(ctx, pool, t)
			if err != nil {
				uiprogress.Stop()
				return err
			}
			total += res.Rows
			bar.Incr()
		}
		uiprogress.Stop()

		fmt.Printf("loaded %d rows from %d file(s)\n", total, len(args))
		return nil
	},
}

func init() {
	loadCmd.Flags().String("dsn", "", "PostgreSQL connection string")
	viper.BindPFlag("database.dsn", loadCmd.Flags().Lookup("dsn"))
	RootCmd.AddCommand(loadCmd)
}
