// Package config loads and saves the user's goban-replay settings.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/goccy/go-json"
	"github.com/spf13/viper"

	"goban-replay/player"
)

var (
	cfgFile = "goban-replay/config.json"
	dataDir = "goban-replay"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board" mapstructure:"board"`
	BoardColorAlt     int `json:"board_alt" mapstructure:"board_alt"`
	BlackColor        int `json:"black" mapstructure:"black"`
	BlackColorAlt     int `json:"black_alt" mapstructure:"black_alt"`
	WhiteColor        int `json:"white" mapstructure:"white"`
	WhiteColorAlt     int `json:"white_alt" mapstructure:"white_alt"`
	LineColor         int `json:"line" mapstructure:"line"`
	LastPlayedColorBG int `json:"last_played_bg" mapstructure:"last_played_bg"`
}

type ConfigSymbols struct {
	BlackStone  rune `json:"black" mapstructure:"black"`
	WhiteStone  rune `json:"white" mapstructure:"white"`
	BoardSquare rune `json:"board" mapstructure:"board"`
	LastPlayed  rune `json:"last_played" mapstructure:"last_played"`
}

type Theme struct {
	DrawStoneBackground      bool          `json:"draw_stone_bg" mapstructure:"draw_stone_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg" mapstructure:"draw_last_played_bg"`
	FullWidthLetters         bool          `json:"fullwidth_letters" mapstructure:"fullwidth_letters"`
	UseGridLines             bool          `json:"use_grid_lines" mapstructure:"use_grid_lines"`
	Colors                   ConfigColors  `json:"colors" mapstructure:"colors"`
	Symbols                  ConfigSymbols `json:"symbols" mapstructure:"symbols"`
}

// Playback holds the replay pace and where records are read from.
type Playback struct {
	MoveDelayMS     int      `json:"move_delay_ms" mapstructure:"move_delay_ms"`
	EndDelayMS      int      `json:"end_delay_ms" mapstructure:"end_delay_ms"`
	SGFDirs         []string `json:"sgf_dirs" mapstructure:"sgf_dirs"`
	ShowAnnotations bool     `json:"show_annotations" mapstructure:"show_annotations"`
	ErrorPolicy     string   `json:"error_policy" mapstructure:"error_policy"`
}

type Config struct {
	Theme    Theme    `json:"theme" mapstructure:"theme"`
	Playback Playback `json:"playback" mapstructure:"playback"`
}

// InitConfig returns the defaults overlaid with the user's config file, if
// one exists in the XDG config directories.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		if err := config.Validate(); err != nil {
			return nil, err
		}
		return &config, nil
	}
	return Load(absPath)
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	config.Playback.SGFDirs = append([]string(nil), DefaultConfig.Playback.SGFDirs...)
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.BoardSquare, c.Theme.Symbols.LastPlayed} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Playback.MoveDelayMS <= 0 {
		return &InvalidConfig{fmt.Sprintf("move delay must be positive, got %d", c.Playback.MoveDelayMS)}
	}
	if c.Playback.EndDelayMS < 0 {
		return &InvalidConfig{fmt.Sprintf("end delay must not be negative, got %d", c.Playback.EndDelayMS)}
	}
	if _, err := player.ParsePolicy(c.Playback.ErrorPolicy); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

// Options converts the playback section for the player.
func (p Playback) Options() player.Options {
	policy, _ := player.ParsePolicy(p.ErrorPolicy)
	return player.Options{
		MoveDelay: time.Duration(p.MoveDelayMS) * time.Millisecond,
		EndDelay:  time.Duration(p.EndDelayMS) * time.Millisecond,
		Policy:    policy,
	}
}

// RecordDirs returns the directories to load records from: the configured
// ones, or else every existing goban-replay directory under the XDG data
// dirs. With nothing configured or found it returns the user's data dir so
// the caller can report where records were expected.
func (p Playback) RecordDirs() []string {
	if len(p.SGFDirs) > 0 {
		return p.SGFDirs
	}
	var dirs []string
	for _, base := range append([]string{xdg.DataHome}, xdg.DataDirs...) {
		dir := filepath.Join(base, dataDir)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return []string{filepath.Join(xdg.DataHome, dataDir)}
	}
	return dirs
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", filePath, err)
	}
	if err := v.Unmarshal(a); err != nil {
		return fmt.Errorf("decode config %s: %w", filePath, err)
	}
	return nil
}
