package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug               = "debug"
	ConfigGodMode             = "god-mode"
	ConfigHintDisplayDuration = "hint-display-duration"
	ConfigMaxLogMsgs          = "max-log-msgs"
	ConfigBoardDim            = "board-dim"
	ConfigEngineScript        = "engine-script"
	ConfigHistoryFile         = "history-file"
	ConfigColorOutput         = "color-output"
	ConfigCPUProfile          = "cpu-profile"
	ConfigFile                = "config"
	ConfigEnvFile             = "env-file"
)

// Config wraps a viper instance. Values come from flags, then XWORD_*
// environment variables (a .env file may supply some), then an optional
// config file, then defaults.
type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config holding only the defaults.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigGodMode, false)
	c.SetDefault(ConfigHintDisplayDuration, 3*time.Second)
	c.SetDefault(ConfigMaxLogMsgs, 10)
	c.SetDefault(ConfigBoardDim, 15)
	c.SetDefault(ConfigEngineScript, "")
	c.SetDefault(ConfigHistoryFile, "/tmp/xwordclient_history")
	c.SetDefault(ConfigColorOutput, true)
	c.SetDefault(ConfigCPUProfile, "")
}

// Load reads the command line, the environment and the config file.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	flags := pflag.NewFlagSet("xwordclient", pflag.ContinueOnError)
	flags.Bool(ConfigDebug, false, "debug logging on")
	flags.Bool(ConfigGodMode, false, "start in god mode: hints, tray editing, forced plays")
	flags.Duration(ConfigHintDisplayDuration, 3*time.Second, "how long a hint stays on the board")
	flags.Int(ConfigMaxLogMsgs, 10, "the number of messages kept in the message log")
	flags.Int(ConfigBoardDim, 15, "board dimension")
	flags.String(ConfigEngineScript, "", "a Lua script that plays the engine side, relative to the working directory")
	flags.String(ConfigHistoryFile, "/tmp/xwordclient_history", "shell history file")
	flags.Bool(ConfigColorOutput, true, "use ANSI colors on a terminal")
	flags.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	flags.String(ConfigFile, "", "a YAML config file")
	flags.String(ConfigEnvFile, ".env", "a file of XWORD_* environment settings")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(flags); err != nil {
		return err
	}
	envFile, _ := flags.GetString(ConfigEnvFile)
	if err := loadDotEnv(envFile); err != nil {
		return err
	}

	c.SetEnvPrefix("XWORD")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cf := c.GetString(ConfigFile); cf != "" {
		c.SetConfigFile(cf)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// loadDotEnv adds the settings in path to the environment. Variables that
// are already set keep their value. A missing file is fine.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// AdjustRelativePaths makes relative paths absolute against the working
// directory, so they keep pointing at the same file whatever the process
// does with its directory later.
func (c *Config) AdjustRelativePaths() error {
	for _, key := range []string{ConfigEngineScript} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		c.Set(key, abs)
	}
	return nil
}

// SanitizedSettings returns the settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
