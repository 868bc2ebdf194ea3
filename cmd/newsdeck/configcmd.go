package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abelbrown/newsdeck/internal/config"
)

var configWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the config file location, or write it out with defaults filled in",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.ConfigPath()
		}

		if !configWrite {
			_, err := os.Stat(path)
			switch {
			case err == nil:
				fmt.Println(path)
			case errors.Is(err, os.ErrNotExist):
				fmt.Printf("%s (not created; using defaults)\n", path)
			default:
				return err
			}
			return nil
		}

		// Environment overrides stay in the environment.
		fileCfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		if err := fileCfg.Save(path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Println("wrote", path)
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configWrite, "write", false, "write the file with defaults filled in (environment overrides are not saved)")
}
