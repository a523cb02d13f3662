package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cryptosim/hagelin/pkg/logging"
)

// Config is filled from persistent flags, which default to the
// environment.
type Config struct {
	LogLevel string
	LogFile  string
}

var (
	config Config
	logger logrus.FieldLogger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:          "cx52",
	Short:        "Configure Hagelin CX-52 family cipher machines",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logging.Config{Level: config.LogLevel, File: config.LogFile})
		if err != nil {
			return fmt.Errorf("invalid logging configuration: %w", err)
		}
		logger = l
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", envOr("CX52_LOG_LEVEL", "warn"), "log level: debug, info, warn or error (env CX52_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&config.LogFile, "log-file", os.Getenv("CX52_LOG_FILE"), "write rotated logs to this file instead of stderr (env CX52_LOG_FILE)")
}
