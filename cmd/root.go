package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pable/go-tf2-metrics/internal/config"
	"github.com/pable/go-tf2-metrics/internal/logging"
)

var (
	cfgFile  string
	cfg      config.Config
	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "tf2metrics",
	Short: "TF2 console log match metrics tool",
	Long: `Read the TF2 console log (launch the game with -condebug) and compute per-player
match statistics: estimated teams, ratings, kill streaks and score.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(*cobra.Command, []string) { closeLog() },
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default tf2metrics.yaml in home or working dir)")
	pf.String("user", "", "your in-game name")
	pf.String("log", "", "path to console.log")
	pf.String("db", config.DefaultDB, "path to the weapon SQLite database")
	pf.String("log-level", "info", "debug, info, warn or error")
	pf.String("log-file", "", "also write logs to this file")

	for key, flag := range map[string]string{
		"user":          "user",
		"log_path":      "log",
		"db":            "db",
		"logging.level": "log-level",
		"logging.file":  "log-file",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(weaponsCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Read(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	cfg = c
	closeLog = logging.MustCreateLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.File)
	return nil
}
