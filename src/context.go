package src

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/ironsmile/following/src/catalog"
	"github.com/ironsmile/following/src/config"
	"github.com/ironsmile/following/src/library"
	"github.com/ironsmile/following/src/logging"
)

// commandContext holds everything shared between the sub-commands. The
// configuration and the logger are created once on first use.
type commandContext struct {
	sqlFiles fs.FS
	fsys     afero.Fs
	stderr   io.Writer

	configFlag   string
	logLevelFlag string
	verbose      bool

	once   sync.Once
	config config.Config
	log    zerolog.Logger
	err    error
}

func newCommandContext(sqlFiles fs.FS, fsys afero.Fs, stderr io.Writer) *commandContext {
	return &commandContext{
		sqlFiles: sqlFiles,
		fsys:     fsys,
		stderr:   stderr,
	}
}

func (c *commandContext) ensureConfig() (config.Config, zerolog.Logger, error) {
	c.once.Do(func() {
		path := strings.TrimSpace(c.configFlag)
		if path == "" {
			path, c.err = config.UserConfigPath()
			if c.err != nil {
				return
			}
		}

		c.config, c.err = config.Load(c.fsys, path)
		if c.err != nil {
			return
		}

		level := c.logLevelFlag
		if level == "" && !c.verbose {
			level = c.config.LogLevel
		}

		c.log, c.err = logging.New(logging.Options{
			Level:   level,
			Verbose: c.verbose,
			Output:  c.stderr,
		})
		if c.err != nil {
			return
		}

		c.log.Debug().Str("config", path).Msg("configuration loaded")
	})

	return c.config, c.log, c.err
}

// openLibrary opens the library database and makes sure its schema is up to
// date. The returned library must be closed.
func (c *commandContext) openLibrary() (*library.LocalLibrary, error) {
	cfg, log, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	if err := c.fsys.MkdirAll(filepath.Dir(cfg.Database), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	lib, err := library.NewLocalLibrary(cfg.Database, c.sqlFiles, log)
	if err != nil {
		return nil, err
	}

	if err := lib.Initialize(); err != nil {
		lib.Close()
		return nil, fmt.Errorf("initializing library: %w", err)
	}

	return lib, nil
}

// newCatalog returns a catalog client configured for the remote services in
// the configuration.
func (c *commandContext) newCatalog() (*catalog.Client, error) {
	cfg, _, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	client := catalog.NewClient(cfg.MusicBrainz.UserAgent, cfg.MusicBrainz.Delay.Duration)
	client.SetMusicBrainzAPIURL(strings.TrimSuffix(cfg.MusicBrainz.Host, "/"))
	client.SetCoverArtArchiveURL(cfg.CoverArt.Host)

	return client, nil
}
