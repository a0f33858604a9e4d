// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the photoconv CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/photoconv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the photoconv CLI.
var rootCmd = &cobra.Command{
	Use:   "photoconv",
	Short: "Batch-convert HEIC/HEIF and CR2 image trees to PNG",
	Long: `photoconv converts proprietary camera and mobile image formats to PNG,
recursively across a directory tree. The output mirrors the input's relative
subtree structure, conversions run on a bounded worker pool, and every run
ends with a success/failure tally.

Decoding is delegated to an ImageMagick toolchain (magick or convert), which
must be on PATH with HEIF and Canon raw delegates enabled.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./photoconv.yaml or ~/.config/photoconv/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("photoconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "photoconv"))
		}
	}

	viper.SetDefault("jobs", types.DefaultConcurrency)
	if home, err := os.UserHomeDir(); err == nil {
		viper.SetDefault("history_db", filepath.Join(home, ".photoconv", "history.db"))
	}

	viper.SetEnvPrefix("PHOTOCONV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
