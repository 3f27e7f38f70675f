// cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/dragsense/internal/config"
	"github.com/xkilldash9x/dragsense/internal/observability"
)

// newRootCmd builds the root command together with the config value its
// PersistentPreRunE fills in. Subcommands share the returned pointer, so a
// fresh command tree per invocation keeps runs isolated.
func newRootCmd() (*cobra.Command, *config.Config) {
	cfg := &config.Config{}
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "dragsense",
		Short: "Replay, synthesize and inspect drag-and-drop interactions",
		Long: `dragsense drives the drag interaction engine from the command line: it
replays recorded pointer traces against an HTML page with a layout sidecar,
synthesizes human-like drag traces, and queries page layouts.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Runs before any command, setting up config and logging.
			if err := initializeConfig(cfgFile); err != nil {
				return err
			}

			loaded, err := config.NewConfigFromViper(viper.GetViper())
			if err != nil {
				// Fall back to a usable logger so the failure is visible.
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "dragsense"})
				return err
			}
			*cfg = *loaded

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("starting dragsense", zap.String("version", Version))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./dragsense.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newReplayCmd(cfg))
	rootCmd.AddCommand(newSynthCmd())
	rootCmd.AddCommand(newQueryCmd())

	return rootCmd, cfg
}

// NewRootCommand returns a fresh root command tree.
func NewRootCommand() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

// Execute runs the CLI under the given context.
func Execute(ctx context.Context) error {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		return err
	}
	return nil
}

// initializeConfig points the global viper at the config file, defaults and
// environment. Flag bindings happen per command in PreRunE.
func initializeConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("dragsense")
		viper.SetConfigType("yaml")
	}

	config.SetDefaults(viper.GetViper())

	viper.SetEnvPrefix("DRAGSENSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config file: %w", err)
		}
		// No config file; defaults and environment apply.
	}
	return nil
}
