// Package main provides the vibe-intersect command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-intersect/internal/index"
	"github.com/inodb/vibe-intersect/internal/pipeline"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Configuration keys.
const (
	keyWorkers      = "workers"
	keyIndex        = "index"
	keyStrictTokens = "strict_tokens"
	keyLogLevel     = "log.level"
)

// usageError marks errors caused by bad command-line usage.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var uerr usageError
		if errors.As(err, &uerr) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "vibe-intersect [options] <genes.csv> <reads.csv> <output>",
		Short: "Count reads overlapping each gene on the same strand and chromosome",
		Long: `Count, for every gene region, the sequencing reads that overlap it on the
same strand and chromosome. Overlap is inclusive: reads touching a gene
boundary count.

Genes CSV columns: gene, strand, chr, start, end
Reads CSV columns: strand, chr, left, right
Inputs may be gzip-compressed. Output ending in .duckdb or .db is written as a
DuckDB table (gene_results), otherwise as CSV (name, strand, chr, intersections).`,
		Example: `  vibe-intersect genes.csv reads.csv.gz counts.csv
  vibe-intersect --index biogo -j 8 genes.csv reads.csv counts.duckdb
  VIBE_INTERSECT_WORKERS=4 vibe-intersect genes.csv reads.csv -`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(3)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, args[0], args[1], args[2], verbose)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.vibe-intersect.yaml)")

	flags := cmd.Flags()
	flags.IntP(keyWorkers, "j", 0, "Number of counting workers (0: all CPUs)")
	flags.String(keyIndex, string(index.KindImplicit), "Interval index: implicit or biogo")
	flags.Bool("strict-tokens", true, "Reject gene names over 16, strands over 4 and chromosomes over 8 bytes")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	viper.SetDefault(keyWorkers, 0)
	viper.SetDefault(keyIndex, string(index.KindImplicit))
	viper.SetDefault(keyStrictTokens, true)
	viper.SetDefault(keyLogLevel, "info")
	_ = viper.BindPFlag(keyWorkers, flags.Lookup(keyWorkers))
	_ = viper.BindPFlag(keyIndex, flags.Lookup(keyIndex))
	_ = viper.BindPFlag(keyStrictTokens, flags.Lookup("strict-tokens"))

	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads the config file and environment overrides.
func initConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".vibe-intersect")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VIBE_INTERSECT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if cfgFile != "" && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func runCount(cmd *cobra.Command, genesPath, readsPath, outputPath string, verbose bool) error {
	kind, err := index.ParseKind(viper.GetString(keyIndex))
	if err != nil {
		return usageError{err}
	}

	level := viper.GetString(keyLogLevel)
	if verbose {
		level = "debug"
	}
	logger, err := newLogger(level)
	if err != nil {
		return usageError{err}
	}
	defer logger.Sync()

	_, err = pipeline.Run(cmd.Context(), pipeline.Config{
		GenesPath:    genesPath,
		ReadsPath:    readsPath,
		OutputPath:   outputPath,
		Workers:      viper.GetInt(keyWorkers),
		Index:        kind,
		StrictTokens: viper.GetBool(keyStrictTokens),
		Logger:       logger,
	})
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Hint: Check that the file path is correct\n")
	}
	return err
}
