package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/whatsoup/internal/tui"
)

func pickCmd() *cobra.Command {
	var index string
	var all bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Read the chat list and choose a chat",
		Long:  `Opens a TUI with the chats in list order. Type to filter, Enter selects. With --index the chat is chosen by its table number instead.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := scrapeChats(cmd.Context(), 0)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errors.New("no chats found")
			}

			var name string
			if index != "" {
				i, err := tui.ParseIndex(index, len(records))
				if err != nil {
					return err
				}
				name = records[i-1].Name
			} else {
				sel, ok, err := tui.Pick(records, all)
				if err != nil {
					return err
				}
				if !ok {
					return errQuit
				}
				name = sel.Record.Name
			}

			fmt.Printf("Success! '%s' will be scraped and exported.\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&index, "index", "", "Chat number from the summary table (1 = most recent)")
	cmd.Flags().BoolVar(&all, "all", false, "Start with every chat listed instead of the 5 most recent")

	return cmd
}
