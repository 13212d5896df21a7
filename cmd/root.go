// Package cmd implements the csvtable command line interface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"csvtable/internal/column"
	"csvtable/internal/ingest"
	"csvtable/internal/logging"
)

var (
	cfgFile    string
	flagTypes  []string
	flagNoHead bool
	flagDelim  string
	flagLogLvl string
	flagLogFmt string
)

var RootCmd = &cobra.Command{
	Use:   "csvtable",
	Short: "Load delimited text into typed columnar tables",
	Long: `csvtable parses delimited text files into typed, columnar in-memory
tables. Column types and temporal formats are detected from the data and can
be overridden per column. Parsed tables can be printed, inspected, served
over HTTP, or bulk-loaded into PostgreSQL.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(viper.GetString("log.level"), viper.GetString("log.format"))
	},
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./csvtable.yaml)")
	RootCmd.PersistentFlags().StringVar(&flagDelim, "delimiter", ",", "field delimiter (single character)")
	RootCmd.PersistentFlags().BoolVar(&flagNoHead, "no-header", false, "treat the first record as data, not a header")
	RootCmd.PersistentFlags().StringSliceVar(&flagTypes, "col", nil,
		"per-column type override as name=type (types: category, boolean, short, integer, long, float, date, time, datetime, skip); repeatable")
	RootCmd.PersistentFlags().StringVar(&flagLogLvl, "log-level", "info", "log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&flagLogFmt, "log-format", "text", "log format: text or json")

	viper.BindPFlag("parse.delimiter", RootCmd.PersistentFlags().Lookup("delimiter"))
	viper.BindPFlag("parse.no_header", RootCmd.PersistentFlags().Lookup("no-header"))
	viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", RootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig reads in the config file and matching environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("csvtable")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CSVTABLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildOptions assembles parse options for one input file from flags and
// config.
func buildOptions(file string) (ingest.Options, error) {
	b := ingest.NewBuilder().
		FromFile(file).
		Named(tableNameFor(file))

	delim := viper.GetString("parse.delimiter")
	runes := []rune(delim)
	if len(runes) != 1 {
		return ingest.Options{}, fmt.Errorf("delimiter must be a single character, got %q", delim)
	}
	b.WithDelimiter(runes[0])

	// CLI files carry headers unless told otherwise; the library default is
	// headerless.
	if viper.GetBool("parse.no_header") {
		b.WithoutHeader()
	} else {
		b.WithHeader()
	}

	for _, pair := range flagTypes {
		name, typeName, ok := strings.Cut(pair, "=")
		if !ok {
			return ingest.Options{}, fmt.Errorf("invalid --col %q: expected name=type", pair)
		}
		t, err := column.ParseColumnType(typeName)
		if err != nil {
			return ingest.Options{}, fmt.Errorf("invalid --col %q: %w", pair, err)
		}
		b.Column(name).IsOfType(t)
	}

	return b.Build(), nil
}

// tableNameFor derives a table name from a file path.
func tableNameFor(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
