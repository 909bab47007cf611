// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Volas171/handlegen/internal/config"
	"github.com/Volas171/handlegen/internal/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type configKey struct{}

// NewRootCommand builds a fresh command tree with its own viper instance, so
// repeated executions in one process do not share flag or config state.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "handlegen",
		Short:         "Generates handles from random article titles and records them with passwords.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(v, cfgFile); err != nil {
				return err
			}
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger)
				return err
			}
			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("Configuration loaded", zap.String("version", Version), zap.String("config_file", v.ConfigFileUsed()))

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./handlegen.yaml)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("ledger", "", "path of the credential ledger file")
	flags.String("driver", "", "title driver: http or browser")
	flags.String("title-url", "", "URL that serves a random article")
	flags.String("selector", "", "CSS selector of the article heading")
	mustBind(v, "logger.level", flags.Lookup("log-level"))
	mustBind(v, "ledger.path", flags.Lookup("ledger"))
	mustBind(v, "title.driver", flags.Lookup("driver"))
	mustBind(v, "title.url", flags.Lookup("title-url"))
	mustBind(v, "title.selector", flags.Lookup("selector"))

	rootCmd.AddCommand(newGenerateCmd(), newPasswordCmd())
	return rootCmd
}

// Execute runs the root command and logs a failure before returning it.
func Execute(ctx context.Context) error {
	defer observability.Sync()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			observability.GetLogger().Info("Operation canceled")
			return err
		}
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// configFrom returns the configuration attached by PersistentPreRunE.
func configFrom(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok {
		return nil, errors.New("configuration not initialized")
	}
	return cfg, nil
}

// readConfig reads in the config file and HANDLEGEN_* environment variables.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("handlegen")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("HANDLEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}
