package cmd

import (
	"fmt"
	"os"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flanksource/arch-map/config"
	"github.com/flanksource/arch-map/git"
	"github.com/flanksource/arch-map/internal/store"
	"github.com/flanksource/arch-map/models"
)

var (
	cfgFile     string
	projectRoot string
	dbPath      string
)

var rootCmd = &cobra.Command{
	Use:   "arch-map",
	Short: "Historized architecture documentation for a source tree",
	Long: `arch-map keeps a structured, historized knowledge base of a codebase's
architecture: which files exist, what architectural role each plays, how that
role changed over time, and whether files violate declared architectural
rules. Everything is derived mechanically from source and tracked across
repeated scans.

Running arch-map without a subcommand performs a full update:
scan, check violations, and regenerate the summary report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default pipeline: scan + check + report.
		if err := runScan(cmd, args); err != nil {
			return err
		}
		return runReport(cmd, args)
	},
}

// Execute runs the CLI. Violations are data, not process failure: the exit
// code is non-zero only for unrecoverable errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.arch-map.yaml)")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", ".", "Project root containing the scanned tree")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default from .arch-map.yaml)")

	logger.BindFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".arch-map")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Infof("Using config file: %s", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the project configuration, applying the --db override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(projectRoot)
	if err != nil {
		return cfg, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// openStore opens the database handle for one invocation. Callers defer
// Close; the lifecycle is explicit open-at-start, close-at-end.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, cfg, err
	}
	return st, cfg, nil
}

func environment() models.Environment {
	return git.CollectEnvironment(projectRoot, Version)
}
