package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/infiotinc/gqlsource/config"
	"github.com/infiotinc/gqlsource/logging"
	"github.com/infiotinc/gqlsource/source"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cleanup func() error

	logCfg := logging.DefaultConfig().FromEnv()

	rootCmd := &cobra.Command{
		Use:          "gqlsource",
		Short:        "Stream records out of a GraphQL API",
		Long:         "gqlsource builds a query from a YAML source definition, runs it and prints the records it returns.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logCfg.Stderr = cmd.ErrOrStderr()

			var err error
			cleanup, err = logging.Setup(logCfg)
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cleanup != nil {
				return cleanup()
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "gqlsource.yml", "Source definition file")
	rootCmd.PersistentFlags().Var((*levelFlag)(&logCfg.Level), "log-level", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logCfg.FilePath, "log-file", logCfg.FilePath, "Log to a rotated file instead of stderr (env LOG_FILE)")

	rootCmd.AddCommand(newRecordsCommand())
	rootCmd.AddCommand(newFieldsCommand())
	rootCmd.AddCommand(newRenderCommand())

	return rootCmd
}

// levelFlag lets a slog.Level be set from the command line.
type levelFlag slog.Level

func (l *levelFlag) String() string { return slog.Level(*l).String() }

func (l *levelFlag) Set(s string) error {
	return (*slog.Level)(l).UnmarshalText([]byte(s))
}

func (l *levelFlag) Type() string { return "level" }

func loadSource(cmd *cobra.Command) (*source.Source, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return source.New(cfg)
}

func newRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Run the query and print one JSON record per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			src, err := loadSource(cmd)
			if err != nil {
				return err
			}

			stream := src.Records(cmd.Context())
			defer stream.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			n := 0
			for stream.Next() {
				if err := enc.Encode(stream.Get()); err != nil {
					return err
				}

				n++
				if limit > 0 && n >= limit {
					break
				}
			}

			return stream.Err()
		},
	}

	cmd.Flags().IntP("limit", "n", 0, "Stop after this many records (0 prints all)")
	return cmd
}

func newFieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the fields the source declares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(cmd)
			if err != nil {
				return err
			}

			fields := src.Fields()
			names := make([]string, 0, len(fields))
			for name := range fields {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}

func newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the query document without running it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			check, _ := cmd.Flags().GetBool("check")

			src, err := loadSource(cmd)
			if err != nil {
				return err
			}

			doc := src.Document()
			fmt.Fprint(cmd.OutOrStdout(), doc.String())

			if check {
				if err := doc.Validate(); err != nil {
					return fmt.Errorf("invalid query document: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("check", false, "Fail when the document does not parse")
	return cmd
}
