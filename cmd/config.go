package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"ytplay/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	RunE:  configRun,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Edit the configuration interactively",
	RunE:  configSetRun,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func configRun(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err == nil {
		fmt.Printf("# %s\n", path)
	}
	return toml.NewEncoder(os.Stdout).Encode(cfg)
}

func configSetRun(cmd *cobra.Command, args []string) error {
	maxHistory := strconv.Itoa(cfg.MaxHistory)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("mpv path").
				Description("Binary name or absolute path of the player").
				Value(&cfg.MPVPath),
			huh.NewInput().
				Title("yt-dlp path").
				Description("Binary name or absolute path of the updater").
				Value(&cfg.YTDLPPath),
			huh.NewInput().
				Title("Log directory").
				Value(&cfg.LogDir),
			huh.NewInput().
				Title("Max history entries").
				Value(&maxHistory).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("must be a positive integer")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg.MaxHistory, _ = strconv.Atoi(maxHistory)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Println("Configuration saved.")
	return nil
}
