package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"naca/calculator"
)

type app struct {
	cfgFile  string
	logLevel string
	cfg      *calculator.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:          "naca",
		Short:        "NACA 4-digit airfoil generator and force calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := calculator.LoadConfig(a.cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = a.logLevel
			}
			a.cfg = cfg
			return initLogging(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "",
		"ini config file (built-in defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newAnalyzeCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	return rootCmd
}

// Execute is called by main.main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func initLogging(cfg *calculator.Config) error {
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	if cfg.LogFile != "" {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    32, // MB
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
		})
	}
	return nil
}
