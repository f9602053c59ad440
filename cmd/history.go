package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show play history",
	RunE:  historyRun,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all play history",
	RunE:  historyClearRun,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

func historyRun(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	entries := store.Recent()
	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s\t%s\t%d plays\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Title, e.PlayCount, e.URL)
	}
	return nil
}

func historyClearRun(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if store.Len() == 0 {
		fmt.Println("History is already empty.")
		return nil
	}

	var confirmed bool
	err = huh.NewConfirm().
		Title(fmt.Sprintf("Delete all %d history entries?", store.Len())).
		Value(&confirmed).
		Run()
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	fmt.Println("History cleared.")
	return nil
}
