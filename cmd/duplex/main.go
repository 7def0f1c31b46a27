// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the duplex CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the duplex CLI.
var rootCmd = &cobra.Command{
	Use:   "duplex",
	Short: "Merge single-sided scans into a double-sided PDF",
	Long: `duplex merges the two passes of a single-sided document scanner into one
double-sided PDF. The front pass supplies odd output pages and the back pass
even ones. Page counts are validated before anything is written, the merged
file appears atomically, and consumed inputs move into a timestamped archive.

Run duplex merge in the directory the scanner drops its files into, or point
--front and --back anywhere.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./duplex.yaml or ~/.config/duplex/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("duplex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "duplex"))
		}
	}

	viper.SetEnvPrefix("DUPLEX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		code := exitCode(err)
		prefix := "error:"
		if code == exitArchiveFailed {
			// The merged output exists by the time archiving can fail.
			prefix = "warning:"
		}
		fmt.Fprintln(os.Stderr, prefix, err)
		os.Exit(code)
	}
}
