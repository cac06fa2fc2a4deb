package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/whatsoup/internal/config"
	"github.com/Zuo-Peng/whatsoup/internal/logging"
	"github.com/Zuo-Peng/whatsoup/internal/prompt"
)

var version = "dev"

var (
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

// errQuit is returned when the user chose to stop at a prompt.
var errQuit = errors.New("quit")

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Load()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(cfgPath)
	if err != nil {
		return nil, err
	}
	return config.LoadFile(abs, home)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "whatsoup",
		Short:         "WhatSoup - list your WhatsApp Web chats from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err = logging.New(cfg.LogLevel, verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default ~/.config/whatsoup/config.toml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")

	root.AddCommand(listCmd())
	root.AddCommand(pickCmd())
	root.AddCommand(doctorCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, errQuit) || errors.Is(err, prompt.ErrAborted) {
			fmt.Println("You've quit WhatSoup.")
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
