package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/chaz8081/gostt-transcribe/internal/models"
	"github.com/spf13/cobra"
)

func newModelsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List or download whisper models",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the supported model sizes and whether they are downloaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(*configPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SIZE\tFILE\tAPPROX\tDOWNLOADED")
			for _, m := range models.All() {
				_, statErr := os.Stat(m.Path(cfg.Transcribe.ModelsDir))
				fmt.Fprintf(w, "%s\t%s\t%.0f MB\t%t\n", m.Size, m.Filename, m.SizeMB(), statErr == nil)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "download <size>",
		Short:     "Download a model into the models directory",
		Args:      cobra.ExactArgs(1),
		ValidArgs: models.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(*configPath)
			if err != nil {
				return err
			}

			m, err := models.Lookup(args[0])
			if err != nil {
				return err
			}

			path, err := newDownloader(slog.Default()).Download(cmd.Context(), m, cfg.Transcribe.ModelsDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}
