package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/whatsoup/internal/prompt"
	"github.com/Zuo-Peng/whatsoup/internal/render"
)

func listCmd() *cobra.Command {
	var full, tsv bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Read the chat list and print a summary table",
		Long: `Opens WhatsApp Web, walks the chat list from the top and prints each chat's
name, last message time and last message. On a terminal the five most recent
chats are shown first; pipes get TSV:
  index, name, time, message`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := scrapeChats(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if tsv || !term.IsTerminal(int(os.Stdout.Fd())) {
				return render.WriteTSV(os.Stdout, records)
			}

			fmt.Printf("%s\n\n", render.Table(records, render.Options{Full: full}))
			if full || len(records) <= render.ShortLimit {
				return nil
			}

			more, err := prompt.Confirm("Would you like to see a complete summary of the scraped chats")
			if err != nil {
				return err
			}
			if more {
				fmt.Println(render.Table(records, render.Options{Full: true}))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Show every chat instead of the 5 most recent")
	cmd.Flags().BoolVar(&tsv, "tsv", false, "Write TSV even on a terminal")
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many chats (0 = whole list)")

	return cmd
}
