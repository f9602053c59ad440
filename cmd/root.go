// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ytplay/internal/config"
	"ytplay/internal/history"
	"ytplay/internal/httputil"
	"ytplay/internal/logging"
	"ytplay/internal/player"
	"ytplay/internal/title"
	"ytplay/internal/tui"
	"ytplay/internal/updater"
	"ytplay/internal/validate"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagFullscreen bool
	flagLoop       bool
)

// cfg holds the loaded configuration.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ytplay [url]",
	Short: "Play YouTube videos with mpv from the terminal",
	Long: `ytplay validates a YouTube URL and launches mpv on it, keeping a
bounded play history. Run without arguments for the interactive UI, or
pass a URL to play it directly.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              rootRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&flagFullscreen, "fullscreen", "f", false, "Start playback in fullscreen")
	rootCmd.Flags().BoolVarP(&flagLoop, "loop", "l", false, "Loop the video indefinitely")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return nil
}

func rootRun(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return playOnce(args[0])
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal; pass a URL to play directly")
	}

	tail := logging.NewTail(200)
	log, closer, err := logging.Open(cfg.LogDir, tail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, continuing without log file\n", err)
		log = logging.Discard()
	} else {
		defer closer.Close()
	}
	log.Info("application started", "version", Version)

	store, err := openStore()
	if err != nil {
		return err
	}

	app := &tui.App{
		Config:  cfg,
		Store:   store,
		Player:  player.New(cfg.MPVPath, log),
		Client:  httputil.NewClient(),
		Log:     log,
		Tail:    tail,
		Version: Version,
	}
	return tui.Run(app)
}

// playOnce is the non-interactive path: validate, launch, record, and block
// until playback ends.
func playOnce(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("please enter a URL")
	}
	if !validate.IsValid(url) {
		return fmt.Errorf("invalid YouTube URL format: %s", url)
	}

	log, closer, err := logging.Open(cfg.LogDir, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, continuing without log file\n", err)
		log = logging.Discard()
	} else {
		defer closer.Close()
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	// Self-update runs in the background; playback does not wait for it.
	updaterDone := make(chan struct{})
	go func() {
		defer close(updaterDone)
		updater.Run(context.Background(), cfg.YTDLPPath, log)
	}()

	ctrl := player.New(cfg.MPVPath, log)
	opts := player.Options{Fullscreen: flagFullscreen, Loop: flagLoop}
	if err := ctrl.Play(url, opts); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}

	entryTitle := validate.DisplayTitle(url)
	if t, err := title.Fetch(httputil.NewClient(), url); err == nil {
		entryTitle = t
	} else {
		log.Debug("fetching title", "url", url, "error", err)
	}
	if err := store.Record(url, entryTitle); err != nil {
		log.Warn("saving history", "error", err)
	}

	fmt.Printf("Playing %s\n", url)
	if err := ctrl.Wait(); err != nil {
		// mpv exits non-zero on user quit, which is normal.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("waiting for player: %w", err)
		}
	}
	<-updaterDone
	return nil
}

func openStore() (*history.Store, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, fmt.Errorf("resolving history path: %w", err)
	}
	return history.Open(path, cfg.MaxHistory), nil
}
