// Package cli implements the chime CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chime/internal/model"
	"chime/internal/ringtone"
	"chime/internal/store"
)

var (
	cfgFile    string
	dbPath     string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "chime",
	Short: "Alarm clock with YouTube ringtones",
	Long:  "A CLI alarm clock. Alarms live in SQLite; ringtones are resolved from YouTube by the alarm label. Run the scheduler with `chime run`.",
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.chime/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $CHIME_DB or ~/.chime/alarms.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

// initConfig reads in the config file and CHIME_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(filepath.Join(home, ".chime"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("chime")
	viper.AutomaticEnv()

	viper.SetDefault("snooze_minutes", 5)
	viper.SetDefault("dismiss_after", "10m")

	viper.ReadInConfig() // missing config file is fine
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if v := viper.GetString("db"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".chime", "alarms.db")
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func newResolver() ringtone.Resolver {
	return ringtone.NewYouTubeResolver(viper.GetString("youtube_api_key"))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// parseDays parses a comma-separated weekday list ("Mon,Wed,fri").
func parseDays(s string) ([]model.Weekday, error) {
	if s == "" {
		return nil, nil
	}
	var days []model.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := model.ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}
