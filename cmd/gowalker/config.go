package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Write the environment configuration",
		Long: "Write the environment configuration named by --env-config, " +
			"or the default configuration, to path. The format is given by " +
			"the extension of path. Without a path, the configuration is " +
			"printed as YAML.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.envConfig()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return c.Save(args[0])
			}

			data, err := yaml.Marshal(c)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
