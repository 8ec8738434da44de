// Package cmd contains all CLI commands for meteortype.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tomz197/meteortype/internal/config"
)

var cfgDir string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meteortype",
	Short: "Type the words on falling meteors before they hit the Earth",
	Long: `meteortype is a terminal typing game. Words ride on meteors falling
towards the ground; type a word to blast its meteor out of the sky.
Every meteor that lands costs health, and the game ends when health runs out.

Running 'meteortype' without arguments starts a local game in this terminal.
Use 'meteortype serve' to host games over SSH.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/meteortype)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose logging")
	rootCmd.PersistentFlags().String("db", "", "sqlite database path (default is <config>/meteortype.db)")

	rootCmd.PersistentFlags().String("words", "", "word list file (JSON or YAML) to play with; reloaded when it changes")
	rootCmd.PersistentFlags().String("tag", "", `only play words with this grammatical tag ("n", "v", "adj", ...)`)
	rootCmd.PersistentFlags().String("mode", config.ModeOriginal, "meteor labels: original or translation")
	rootCmd.PersistentFlags().String("narrator", "", `speech command such as "espeak", or "log"`)
	rootCmd.PersistentFlags().Bool("pinyin", false, "accept toneless pinyin for Chinese answers")
	rootCmd.Flags().Bool("sound", true, "play sound effects")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("words", rootCmd.PersistentFlags().Lookup("words"))
	viper.BindPFlag("tag", rootCmd.PersistentFlags().Lookup("tag"))
	viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("narrator", rootCmd.PersistentFlags().Lookup("narrator"))
	viper.BindPFlag("pinyin_answers", rootCmd.PersistentFlags().Lookup("pinyin"))
	viper.BindPFlag("sound", rootCmd.Flags().Lookup("sound"))
}

// initConfig resolves the config directory.
func initConfig() {
	dir, err := config.Dir(cfgDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error finding config directory:", err)
		os.Exit(1)
	}
	viper.Set("config_dir", dir)
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig resolves defaults, config.yaml, METEOR_* variables and flags.
func loadConfig() (config.Config, error) {
	dir := getConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return config.Config{}, fmt.Errorf("creating config directory: %w", err)
	}
	return config.Load(viper.GetViper(), dir)
}
