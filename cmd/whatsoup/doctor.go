package main

import (
	"fmt"
	"os"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: config, Chrome binary, profile and selectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("=== Config ===")
			if cfg.Path == "" {
				fmt.Println("  File: none (using defaults)")
			} else {
				fmt.Printf("  File: %s\n", cfg.Path)
			}
			fmt.Printf("  URL:  %s\n", cfg.URL)
			fmt.Printf("  Wait: %ds (+%ds per retry)\n", cfg.WaitSeconds, cfg.WaitStepSeconds)

			fmt.Println("\n=== Chrome ===")
			if cfg.ChromeBin != "" {
				checkFile("Binary", cfg.ChromeBin)
			} else if found, ok := launcher.LookPath(); ok {
				fmt.Printf("  Binary: %s (OK, auto-detected)\n", found)
			} else {
				fmt.Println("  Binary: not found locally, rod will download Chromium on first run")
			}
			if cfg.ProfileDir == "" {
				fmt.Println("  Profile: temporary (you will have to scan the QR code every run)")
			} else {
				checkDir("Profile", cfg.ProfileDir)
			}

			fmt.Println("\n=== Selectors ===")
			s := cfg.Selectors
			fmt.Printf("  chat_pane:       %s\n", s.ChatPane)
			fmt.Printf("  search_box:      %s\n", s.SearchBox)
			fmt.Printf("  preview_region:  %s\n", s.PreviewRegion)
			fmt.Printf("  name_region:     %s\n", s.NameRegion)
			fmt.Printf("  emoji:           %s [%s]\n", s.Emoji, s.EmojiAttribute)
			fmt.Println("  Status: OK")
			return nil
		},
	}
}

func checkFile(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if info.IsDir() {
		fmt.Printf("  %s: %s (IS A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND, Chrome will create it)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
