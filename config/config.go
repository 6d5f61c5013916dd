// Package config holds the runtime configuration of the Tock engine and its
// binaries. Values come from (in order of precedence) command-line flags,
// TOCK_* environment variables, an optional config file, and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug           = "debug"
	ConfigConfigFile      = "config-file"
	ConfigEnvFile         = "env-file"
	ConfigRegionSize      = "region-size"
	ConfigHouseSize       = "house-size"
	ConfigTeamFinish      = "team-finish"
	ConfigSeats           = "seats"
	ConfigLuaScript       = "lua-script"
	ConfigHistoryFile     = "history-file"
	ConfigNatsURL         = "nats-url"
	ConfigNatsSubject     = "nats-subject"
	ConfigNatsRetries     = "nats-retries"
	ConfigAutoplayGames   = "autoplay-games"
	ConfigAutoplayThreads = "autoplay-threads"
	ConfigMaxTurns        = "max-turns"
	ConfigPositionFile    = "position-file"
)

const (
	DefaultRegionSize = 17
	DefaultHouseSize  = 4
)

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config with every default set and nothing read
// from the environment. Handy for tests.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigRegionSize, DefaultRegionSize)
	c.SetDefault(ConfigHouseSize, DefaultHouseSize)
	c.SetDefault(ConfigTeamFinish, false)
	c.SetDefault(ConfigSeats, []string{"shell", "random", "random", "random"})
	c.SetDefault(ConfigLuaScript, "")
	c.SetDefault(ConfigHistoryFile, "/tmp/tock_readline.tmp")
	c.SetDefault(ConfigNatsURL, "")
	c.SetDefault(ConfigNatsSubject, "tock.events")
	c.SetDefault(ConfigNatsRetries, 5)
	c.SetDefault(ConfigAutoplayGames, 100)
	c.SetDefault(ConfigAutoplayThreads, 4)
	c.SetDefault(ConfigMaxTurns, 5000)
	c.SetDefault(ConfigPositionFile, "")
}

// Load parses the passed-in args and layers them over the environment and
// the optional config file.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("tock", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "path to a yaml/toml/json config file")
	fs.String(ConfigEnvFile, "", "a .env file with TOCK_* variables to load first")
	fs.Int(ConfigRegionSize, DefaultRegionSize, "number of ring spots per color")
	fs.Int(ConfigHouseSize, DefaultHouseSize, "number of house spots per color")
	fs.Bool(ConfigTeamFinish, false, "a team only wins once both colors have filled their houses")
	fs.StringSlice(ConfigSeats, []string{"shell", "random", "random", "random"}, "player kind per seat: shell, random or lua")
	fs.String(ConfigLuaScript, "", "script used by lua seats")
	fs.String(ConfigHistoryFile, "/tmp/tock_readline.tmp", "readline history file")
	fs.String(ConfigNatsURL, "", "if set, game events are published to this NATS server")
	fs.String(ConfigNatsSubject, "tock.events", "subject prefix for published events")
	fs.Int(ConfigNatsRetries, 5, "connection attempts before giving up on NATS")
	fs.Int(ConfigAutoplayGames, 100, "number of games for autoplay")
	fs.Int(ConfigAutoplayThreads, 4, "number of concurrent autoplay games")
	fs.Int(ConfigMaxTurns, 5000, "abandon a game after this many turns; 0 means never")
	fs.String(ConfigPositionFile, "", "start from the position in this yaml file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	if ef := c.GetString(ConfigEnvFile); ef != "" {
		// Variables already set in the environment win over the file.
		if err := godotenv.Load(ef); err != nil {
			return fmt.Errorf("reading env file %s: %w", ef, err)
		}
	}
	c.SetEnvPrefix("tock")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cf := c.GetString(ConfigConfigFile); cf != "" {
		c.SetConfigFile(cf)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cf, err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.RegionSize() <= c.HouseSize() {
		return fmt.Errorf("region size %d must exceed house size %d",
			c.RegionSize(), c.HouseSize())
	}
	if c.HouseSize() < 1 {
		return fmt.Errorf("house size must be positive, got %d", c.HouseSize())
	}
	if n := len(c.Seats()); n != 4 {
		return fmt.Errorf("need exactly 4 seats, got %d", n)
	}
	return nil
}

func (c *Config) RegionSize() int  { return c.GetInt(ConfigRegionSize) }
func (c *Config) HouseSize() int   { return c.GetInt(ConfigHouseSize) }
func (c *Config) TeamFinish() bool { return c.GetBool(ConfigTeamFinish) }
func (c *Config) Seats() []string  { return c.GetStringSlice(ConfigSeats) }
func (c *Config) MaxTurns() int    { return c.GetInt(ConfigMaxTurns) }

// SanitizedSettings returns the settings for logging purposes.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	if _, ok := settings[ConfigNatsURL]; ok && c.GetString(ConfigNatsURL) != "" {
		settings[ConfigNatsURL] = "<redacted>"
	}
	return settings
}
