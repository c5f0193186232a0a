package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/spf13/cobra"

	"apc-control/config"
)

var initOpts struct {
	variant string
	force   bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the controller configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file from a preset",
	Long:  "Presets: " + strings.Join(config.Variants(), ", "),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Variant(initOpts.variant)
		if err != nil {
			return err
		}
		path := configPath
		if path == "" {
			if path, err = config.ConfigPath(); err != nil {
				return err
			}
		}
		if _, err := os.Stat(path); err == nil && !initOpts.force {
			return fault.Wrap(fault.New("config exists"),
				fmsg.WithDesc("config exists", path+" already exists; pass --force to overwrite"),
				ftag.With(ftag.InvalidArgument))
		}
		if configPath == "" {
			err = cfg.Save()
		} else {
			err = cfg.SaveFile(path)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d controller(s))\n", path, len(cfg.Controllers))
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&initOpts.variant, "variant", "apcmini", "preset to write")
	configInitCmd.Flags().BoolVar(&initOpts.force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
