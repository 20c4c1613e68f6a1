// Package main is the entry point for the combat tracker CLI
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/config"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/observability"
)

var (
	configPath   string
	outputFormat string

	// tracker is built once per process by the root pre-run hook
	tracker *application
)

var rootCmd = &cobra.Command{
	Use:               "tracker",
	Short:             "Tabletop RPG combat tracker",
	Long:              `Track battles, their combatants and hit points against a local or remote store.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flags.StringVarP(&outputFormat, "output", "o", formatText, "Output format: text, json or yaml")
	flags.String("store", "", "Store driver: memory, redis, postgres or postgrest")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(battleCmd)
	rootCmd.AddCommand(combatCmd)
	rootCmd.AddCommand(newSourceCmd(characterKind))
	rootCmd.AddCommand(newSourceCmd(creatureKind))
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if tracker != nil {
		if cerr := tracker.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges defaults, the config file, TRACKER_* variables and the
// root flags
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := config.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "reading config file %s", configPath)
		}
	}
	if f := cmd.Flags().Lookup("store"); f != nil && f.Changed {
		v.Set("store.driver", f.Value.String())
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		v.Set("logging.level", f.Value.String())
	}
	return config.LoadFromViper(v)
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(outputFormat); err != nil {
		return err
	}
	if tracker != nil || cmd.Annotations[annotationNoStore] == "true" {
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}

	tracker, err = newApplication(cmd.Context(), cfg, logger)
	return err
}
