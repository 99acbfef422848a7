// Package config is responsible for finding, parsing and merging the user
// configuration with the default one.
//
// Linux/BSD configurations should be in $HOME/.following/config.toml
// Windows configurations should be in %USERPROFILE%/following/config.toml
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/ironsmile/following/src/helpers"
	"github.com/ironsmile/following/src/version"
)

const (
	// ConfigName is the name of the configuration file in the user directory.
	ConfigName = "config.toml"

	// DatabaseName is the default name of the library database.
	DatabaseName = "library.db"
)

// ErrInvalid is returned for configurations with invalid values.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration type. Should contain representation for everything
// in config.toml.
type Config struct {
	// Libraries are the directories which are scanned for albums.
	Libraries []string `toml:"libraries"`

	// Database is the path to the SQLite library database. Relative paths
	// are relative to the directory of the configuration file.
	Database string `toml:"database"`

	// Listen is the address on which the HTTP API listens.
	Listen string `toml:"listen"`

	LogLevel string `toml:"log_level"`

	MusicBrainz MusicBrainz `toml:"musicbrainz"`
	CoverArt    CoverArt    `toml:"coverart"`
}

// MusicBrainz configures the MusicBrainz web service client.
type MusicBrainz struct {
	UserAgent string `toml:"user_agent"`
	Host      string `toml:"host"`

	// Delay is the minimal time between two consecutive requests.
	Delay Duration `toml:"delay"`
}

// CoverArt configures the Cover Art Archive client.
type CoverArt struct {
	Host string `toml:"host"`
}

// Duration is a time.Duration which is written as a string such as "1s"
// in the configuration file.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the default configuration for a user directory.
func Default(userDir string) Config {
	return Config{
		Database: filepath.Join(userDir, DatabaseName),
		Listen:   "localhost:9996",
		LogLevel: "info",
		MusicBrainz: MusicBrainz{
			UserAgent: version.UserAgent(),
			Host:      "https://musicbrainz.org",
			Delay:     Duration{time.Second},
		},
		CoverArt: CoverArt{
			Host: "https://coverartarchive.org",
		},
	}
}

// UserConfigPath returns the full path to the place where the user's
// configuration file should be.
func UserConfigPath() (string, error) {
	dir, err := helpers.ProjectUserPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigName), nil
}

// Load finds the configuration file at path, parses it and merges it on top of
// the default configuration. When the file does not exist it is created with the
// default values.
func Load(fsys afero.Fs, path string) (Config, error) {
	dir := filepath.Dir(path)
	cfg := Default(dir)

	content, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeDefault(fsys, path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var userCfg Config
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&userCfg); err != nil {
		var details *toml.DecodeError
		if errors.As(err, &details) {
			row, col := details.Position()
			return Config{}, fmt.Errorf("parsing %s at %d:%d: %w", path, row, col, err)
		}
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.merge(&userCfg)
	cfg.resolvePaths(dir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that all values in the configuration are usable.
func (cfg Config) Validate() error {
	if cfg.Database == "" {
		return fmt.Errorf("%w: database path is empty", ErrInvalid)
	}
	if cfg.MusicBrainz.UserAgent == "" {
		return fmt.Errorf("%w: musicbrainz.user_agent is empty", ErrInvalid)
	}
	if cfg.MusicBrainz.Delay.Duration < 0 {
		return fmt.Errorf("%w: musicbrainz.delay is negative", ErrInvalid)
	}
	return nil
}

// merge merges an other config on top of itself. Only non-zero values will be
// merged. Nested structs are merged field by field.
func (cfg *Config) merge(merged *Config) {
	mergeValues(reflect.ValueOf(cfg).Elem(), reflect.ValueOf(merged).Elem())
}

func mergeValues(cfgVal, mergedVal reflect.Value) {
	for i := 0; i < mergedVal.NumField(); i++ {
		mergedField := mergedVal.Field(i)
		cfgField := cfgVal.Field(i)

		if !cfgField.CanSet() || mergedField.IsZero() {
			continue
		}

		_, isDuration := mergedField.Interface().(Duration)
		if mergedField.Kind() == reflect.Struct && !isDuration {
			mergeValues(cfgField, mergedField)
			continue
		}

		cfgField.Set(mergedField)
	}
}

func (cfg *Config) resolvePaths(dir string) {
	cfg.Database = helpers.AbsolutePath(cfg.Database, dir)
	for i, lib := range cfg.Libraries {
		cfg.Libraries[i] = helpers.AbsolutePath(lib, dir)
	}
}

func writeDefault(fsys afero.Fs, path string, cfg Config) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if err := afero.WriteFile(fsys, path, content, 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	return nil
}
