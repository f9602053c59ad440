package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ytplay/internal/updater"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run the yt-dlp self-update now",
	RunE:  updateRun,
}

func updateRun(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	updater.Run(cmd.Context(), cfg.YTDLPPath, log)
	return nil
}
