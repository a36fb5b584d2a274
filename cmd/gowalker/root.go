package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/samuelfneumann/gowalker/environment/envconfig"
	"github.com/samuelfneumann/gowalker/utils/logging"
)

// Keys of the run settings. Each can be set by flag, by an environment
// variable with the GOWALKER prefix, or in the settings file.
const (
	keyLogLevel    = "log-level"
	keyLogFormat   = "log-format"
	keyLogFile     = "log-file"
	keyEnvConfig   = "env-config"
	keySteps       = "steps"
	keyEpisodes    = "episodes"
	keyAgent       = "agent"
	keyStdDev      = "std"
	keySeed        = "seed"
	keyOut         = "out"
	keyRenderEvery = "render-every"
	keyPlotWindow  = "plot-window"
	keyProgress    = "progress"
	keyRuns        = "runs"
)

// app holds the state shared by the commands of one invocation
type app struct {
	v        *viper.Viper
	settings string
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "gowalker",
		Short:         "Train and evaluate agents on the walking humanoid",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initializeSettings(cmd); err != nil {
				return err
			}
			return a.initializeLogger()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.settings, "settings", "", "run settings file (yaml)")
	flags.String(keyLogLevel, "info", "log level")
	flags.String(keyLogFormat, logging.Console, "log format, console or json")
	flags.String(keyLogFile, "", "rotating log file, none if empty")
	flags.String(keyEnvConfig, "", "environment configuration file, "+
		"defaults if empty")

	root.AddCommand(newRunCmd(a), newSpecCmd(a), newConfigCmd(a))
	return root
}

// initializeSettings binds the flags of cmd and reads the settings
// file and environment
func (a *app) initializeSettings(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("initializeSettings: %w", err)
	}

	a.v.SetEnvPrefix("GOWALKER")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if a.settings == "" {
		return nil
	}
	a.v.SetConfigFile(a.settings)
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("initializeSettings: could not read settings: %w",
			err)
	}
	return nil
}

func (a *app) initializeLogger() error {
	c := logging.DefaultConfig()
	c.Level = a.v.GetString(keyLogLevel)
	c.Format = a.v.GetString(keyLogFormat)
	c.File = a.v.GetString(keyLogFile)

	logger, err := logging.New(c)
	if err != nil {
		return fmt.Errorf("initializeLogger: %w", err)
	}
	a.logger = logger.Named("gowalker")
	return nil
}

// envConfig returns the environment configuration named by the
// env-config setting
func (a *app) envConfig() (envconfig.Config, error) {
	path := a.v.GetString(keyEnvConfig)
	if path == "" {
		return envconfig.Default(), nil
	}

	c, err := envconfig.Load(path)
	if err != nil {
		return envconfig.Config{}, fmt.Errorf("envConfig: %w", err)
	}
	a.logger.Debug("loaded environment configuration", zap.String("path", path))
	return c, nil
}
