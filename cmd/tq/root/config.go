package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"taskquest/internal/config"
	"taskquest/internal/engine"
	"taskquest/internal/storage"
	"taskquest/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change game tunables",
	}
	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigSetCmd(),
		newConfigResetCmd(),
		newConfigInitCmd(),
	)
	return cmd
}

func printConfig(cmd *cobra.Command, cfg storage.Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the game tunables",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg, err := svc.Config(cmd.Context())
			if err != nil {
				return err
			}
			return printConfig(cmd, cfg)
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value> [<key> <value>...]",
		Short: "Change tunables, e.g. set pointsPerCreate 15 levelThresholds '[0,50,150]'",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return errors.New("expected key/value pairs")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch engine.ConfigPatch
			for i := 0; i < len(args); i += 2 {
				if err := patch.Set(args[i], args[i+1]); err != nil {
					return err
				}
			}

			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg, err := svc.UpdateConfig(cmd.Context(), patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Config updated"))
			return printConfig(cmd, cfg)
		},
	}
}

func newConfigResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default tunables",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cfg, err := svc.ResetConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Config reset to defaults"))
			return printConfig(cmd, cfg)
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default app config file (data path, logging, server)",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultPath()
			}
			if path == "" {
				return errors.New("cannot resolve config path; pass --config")
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Wrote"), path)
			return nil
		},
	}
}
