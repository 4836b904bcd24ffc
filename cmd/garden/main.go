// Package main is the entry point for the garden CLI
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/doodle-garden/internal/config"
	"github.com/KirkDiggler/doodle-garden/internal/errors"
)

var (
	// Store flags override GARDEN_* environment variables
	envFile   string
	storeKind string
	dataDir   string
	redisAddr string
	dsn       string
	rosterKey string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "garden",
	Short: "Doodle garden roster",
	Long: `Garden turns drawings into creatures and keeps the collection.

Drawings are JSON files of the form
  {"color": "green", "strokes": [[[x, y], [x, y]], [[x, y]]]}
on a 100x100 canvas. Use "-" to read a drawing from stdin.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.GetCode(err).ExitStatus())
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", config.DefaultEnvFile, "optional .env file with GARDEN_* variables")
	flags.StringVar(&storeKind, "store", "", "roster store: file, redis, sqlite or postgres")
	flags.StringVar(&dataDir, "data-dir", "", "directory for the file and sqlite stores")
	flags.StringVar(&redisAddr, "redis-addr", "", "redis address or redis:// URL")
	flags.StringVar(&dsn, "dsn", "", "database DSN for the sqlite or postgres store")
	flags.StringVar(&rosterKey, "key", "", "store key of the roster record")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(hatchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(growCmd)
	rootCmd.AddCommand(healCmd)
	rootCmd.AddCommand(damageCmd)
	rootCmd.AddCommand(victoryCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(doctorCmd)
}

// cfg is the resolved configuration of the running command
var cfg *config.Config

// loadConfig resolves env file, environment and flags, in increasing
// precedence, and installs the logger
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(envFile, nil)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	overrides := []struct {
		name  string
		value string
		dest  *string
	}{
		{"store", storeKind, &loaded.Store},
		{"data-dir", dataDir, &loaded.DataDir},
		{"redis-addr", redisAddr, &loaded.RedisAddr},
		{"dsn", dsn, &loaded.DSN},
		{"key", rosterKey, &loaded.RosterKey},
		{"log-level", logLevel, &loaded.LogLevel},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			*o.dest = o.value
		}
	}

	if err := loaded.Validate(); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: loaded.SlogLevel(),
	})))

	cfg = loaded
	return nil
}
