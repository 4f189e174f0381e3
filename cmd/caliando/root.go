package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/caliando/internal/config"
	"github.com/sandevgo/caliando/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "caliando",
	Short: "CaliAndo — conversational guide to plans in Cali",
	Long: `CaliAndo is a WhatsApp assistant that recommends cultural plans,
events and places in Cali, Colombia.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
