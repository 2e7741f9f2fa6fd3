package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-changewizard/internal/config"
)

var configFlags struct {
	project bool
	force   bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage changewizard configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file",
	Long: `Create a changewizard configuration file with sensible defaults.

By default, creates a global config at ~/.config/changewizard/config.yaml.
Use --project to create a project-local config in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), *cfg)
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	configInitCmd.Flags().BoolVarP(&configFlags.force, "force", "f", false, "Overwrite existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if configFlags.project {
		targetPath = config.ProjectPath()
	}
	return initConfig(cmd.OutOrStdout(), targetPath, cfg.Server.BaseURL, configFlags.force)
}

// initConfig writes the default config, keeping the base URL already in
// effect.
func initConfig(w io.Writer, path, baseURL string, force bool) error {
	starter := config.Default()
	starter.Server.BaseURL = baseURL
	if err := config.Write(path, starter, force); err != nil {
		if errors.Is(err, config.ErrExists) {
			return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", path)
		}
		return err
	}
	fmt.Fprintf(w, "Config written to %s\n", path)
	return nil
}

func showConfig(w io.Writer, c config.Config) error {
	if c.Server.Session != "" {
		c.Server.Session = "********"
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = w.Write(out)
	return err
}
