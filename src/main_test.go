package src

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/ironsmile/following/src/assert"
	"github.com/ironsmile/following/src/following"
	"github.com/ironsmile/following/src/library"
	"github.com/ironsmile/following/src/scaler"
	"github.com/ironsmile/following/src/version"
)

const (
	maidenID = "ca891d65-d9b0-4258-89f7-e6ba29d83767"
	abbaID   = "d87e52c5-bb8d-4da8-b941-9f4928627dc8"
)

type cliTestEnv struct {
	configPath string
	database   string
	sqls       string

	mu       sync.Mutex
	requests []string
}

// setupCLITestEnv writes a configuration pointing to a temporary database and
// to a fake MusicBrainz server. The database is populated with albums.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	sqls, err := filepath.Abs(filepath.Join("..", "sqls"))
	assert.NilErr(t, err)

	env := &cliTestEnv{
		configPath: filepath.Join(base, "config.toml"),
		database:   filepath.Join(base, "library.db"),
		sqls:       sqls,
	}

	mbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		artist := req.URL.Query().Get("artist")
		env.mu.Lock()
		env.requests = append(env.requests, artist)
		env.mu.Unlock()

		switch artist {
		case maidenID:
			fmt.Fprint(w, `<metadata xmlns="http://musicbrainz.org/ns/mmd-2.0#">
				<release-group-list count="3" offset="0">
					<release-group id="g1" type="Album">
						<title>Old LP</title>
						<first-release-date>2010-01-01</first-release-date>
					</release-group>
					<release-group id="g2" type="Album">
						<title>New LP</title>
						<first-release-date>2020-05-01</first-release-date>
					</release-group>
					<release-group id="g3" type="Compilation">
						<title>Best Of</title>
						<first-release-date>2015</first-release-date>
					</release-group>
				</release-group-list>
			</metadata>`)
		case abbaID:
			fmt.Fprint(w, `<metadata xmlns="http://musicbrainz.org/ns/mmd-2.0#">
				<release-group-list count="1" offset="0">
					<release-group id="g-waterloo" type="Album">
						<title>Waterloo</title>
						<first-release-date>1974-03-04</first-release-date>
					</release-group>
				</release-group-list>
			</metadata>`)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	t.Cleanup(mbServer.Close)

	configContent := fmt.Sprintf(`database = %q
log_level = "error"

[musicbrainz]
host = %q
delay = "1ms"
`, env.database, mbServer.URL)
	assert.NilErr(t, os.WriteFile(env.configPath, []byte(configContent), 0o644))

	lib, err := library.NewLocalLibrary(env.database, os.DirFS(env.sqls), zerolog.Nop())
	assert.NilErr(t, err)
	defer lib.Close()
	assert.NilErr(t, lib.Initialize())

	for _, album := range []library.Album{
		{
			Name:             "Old LP",
			AlbumArtist:      "X",
			MBAlbumID:        "a1",
			MBAlbumArtistID:  maidenID,
			MBReleaseGroupID: "g1",
			Year:             2010,
			Path:             "/music/X/Old LP",
		},
		{
			Name:             "Waterloo",
			AlbumArtist:      "ABBA",
			MBAlbumID:        "a2",
			MBAlbumArtistID:  abbaID,
			MBReleaseGroupID: "g-waterloo",
			Year:             1974,
			Path:             "/music/ABBA/Waterloo",
		},
		{
			Name:        "Bootleg",
			AlbumArtist: "Unknown",
			Path:        "/music/Unknown/Bootleg",
		},
	} {
		_, err := lib.SaveAlbum(context.Background(), album)
		assert.NilErr(t, err)
	}

	return env
}

func (env *cliTestEnv) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", env.configPath}, args...)
	code := run(
		context.Background(),
		os.DirFS(env.sqls),
		afero.NewOsFs(),
		args,
		&stdout,
		&stderr,
	)

	return stdout.String(), stderr.String(), code
}

func (env *cliTestEnv) artistRequests() []string {
	env.mu.Lock()
	defer env.mu.Unlock()
	return append([]string(nil), env.requests...)
}

// TestMissingCommand runs the missing command against a library with two
// artists, one of which has a missing album.
func TestMissingCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, code := env.run(t, "missing")
	assert.Equal(t, 0, code, "stderr: %s", stderr)

	expected := "Missing albums for artist X:\n" +
		"X - New LP (2020)\n" +
		"No missing albums for artist ABBA\n"
	assert.Equal(t, expected, stdout)
	assert.SliceEqual(t, []string{maidenID, abbaID}, env.artistRequests())
}

// TestMissingCommandQueryAndAfter checks that only the artists of the matching
// albums are reconciled and that old albums are dropped.
func TestMissingCommandQueryAndAfter(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, code := env.run(t, "missing", "albumartist:x", "--after", "2020")
	assert.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "No missing albums for artist X\n", stdout)
	assert.SliceEqual(t, []string{maidenID}, env.artistRequests())
}

// TestMissingCommandJSON checks the JSON output of the missing command.
func TestMissingCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, code := env.run(t, "missing", "--format", "json")
	assert.Equal(t, 0, code, "stderr: %s", stderr)

	var reports []following.ArtistReport
	assert.NilErr(t, json.Unmarshal([]byte(stdout), &reports))
	assert.Equal(t, 2, len(reports))
	assert.SliceEqual(t, []following.MissingAlbum{
		{Artist: "X", Title: "New LP", Year: 2020, ReleaseGroupID: "g2"},
	}, reports[0].Missing)
}

// TestMissingCommandErrors checks that bad input ends with an error message and a
// non-zero exit code.
func TestMissingCommandErrors(t *testing.T) {
	tests := []struct {
		desc string
		args []string
	}{
		{desc: "unknown format", args: []string{"missing", "--format", "yaml"}},
		{desc: "unknown field", args: []string{"missing", "genre:metal"}},
		{desc: "negative after", args: []string{"missing", "--after", "-1"}},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			env := setupCLITestEnv(t)

			_, stderr, code := env.run(t, test.args...)
			assert.Equal(t, 1, code)
			if !strings.HasPrefix(stderr, "Error: ") {
				t.Errorf("expected an error message but got: %s", stderr)
			}
		})
	}
}

// TestMissingCommandRemoteError checks that the run stops on the first error
// from MusicBrainz.
func TestMissingCommandRemoteError(t *testing.T) {
	env := setupCLITestEnv(t)

	lib, err := library.NewLocalLibrary(env.database, os.DirFS(env.sqls), zerolog.Nop())
	assert.NilErr(t, err)
	_, err = lib.SaveAlbum(context.Background(), library.Album{
		Name:            "Unavailable",
		AlbumArtist:     "ZZ Top",
		MBAlbumID:       "a3",
		MBAlbumArtistID: "a81259a0-a2f5-464b-866e-71220f2739f1",
		Path:            "/music/ZZ Top/Unavailable",
	})
	assert.NilErr(t, err)
	assert.NilErr(t, lib.Close())

	stdout, stderr, code := env.run(t, "missing")
	assert.Equal(t, 1, code)
	assert.Equal(t, "", stdout, "nothing should be reported before the failing artist")
	if !strings.Contains(stderr, "503") {
		t.Errorf("expected the HTTP status in the error but got: %s", stderr)
	}
	assert.Equal(t, 1, len(env.artistRequests()))
}

// TestAlbumsCommand lists the albums in the library.
func TestAlbumsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, stderr, code := env.run(t, "albums", "year:1974")
	assert.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "ABBA - Waterloo (1974)\n", stdout)

	stdout, _, code = env.run(t, "albums", "--format", "table")
	assert.Equal(t, 0, code)
	for _, expected := range []string{"Old LP", "Waterloo", "Bootleg"} {
		if !strings.Contains(stdout, expected) {
			t.Errorf("expected %s in the albums table:\n%s", expected, stdout)
		}
	}
}

// TestScanCommandCleanup scans an empty directory and checks that albums which
// were stored under it but are no longer on disk are removed.
func TestScanCommandCleanup(t *testing.T) {
	env := setupCLITestEnv(t)
	musicDir := t.TempDir()

	lib, err := library.NewLocalLibrary(env.database, os.DirFS(env.sqls), zerolog.Nop())
	assert.NilErr(t, err)
	_, err = lib.SaveAlbum(context.Background(), library.Album{
		Name:        "Gone",
		AlbumArtist: "X",
		Path:        filepath.Join(musicDir, "X", "Gone"),
	})
	assert.NilErr(t, err)
	assert.NilErr(t, lib.Close())

	stdout, stderr, code := env.run(t, "scan", musicDir)
	assert.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "Scanned 0 albums, 0 of them with MusicBrainz IDs\n"+
		"Removed 1 albums which are no longer on disk\n", stdout)

	stdout, _, code = env.run(t, "albums", "--format", "json")
	assert.Equal(t, 0, code)
	if strings.Contains(stdout, "Gone") {
		t.Errorf("removed album is still listed: %s", stdout)
	}
	if !strings.Contains(stdout, "Waterloo") {
		t.Errorf("albums outside of the scanned directory were removed: %s", stdout)
	}
}

// TestScanCommandRelativeDirs checks that directories given relative to the
// working directory are matched against the absolute paths of stored albums.
func TestScanCommandRelativeDirs(t *testing.T) {
	env := setupCLITestEnv(t)
	base := t.TempDir()
	musicDir := filepath.Join(base, "music")
	assert.NilErr(t, os.MkdirAll(musicDir, 0o755))

	lib, err := library.NewLocalLibrary(env.database, os.DirFS(env.sqls), zerolog.Nop())
	assert.NilErr(t, err)
	_, err = lib.SaveAlbum(context.Background(), library.Album{
		Name: "Gone",
		Path: filepath.Join(musicDir, "X", "Gone"),
	})
	assert.NilErr(t, err)
	assert.NilErr(t, lib.Close())

	chdir(t, base)

	stdout, stderr, code := env.run(t, "scan", "music")
	assert.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "Scanned 0 albums, 0 of them with MusicBrainz IDs\n"+
		"Removed 1 albums which are no longer on disk\n", stdout)
}

func TestAbsoluteDirs(t *testing.T) {
	base := t.TempDir()
	musicDir := filepath.Join(base, "music")
	chdir(t, base)

	dirs, err := absoluteDirs([]string{
		"music",
		filepath.Join(".", "music") + string(filepath.Separator),
		musicDir,
	})
	assert.NilErr(t, err)
	assert.SliceEqual(t, []string{musicDir, musicDir, musicDir}, dirs)
}

// TestCoverCommandNegativeWidth makes sure a negative width is an error instead
// of being ignored.
func TestCoverCommandNegativeWidth(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(t.TempDir(), "cover.jpg")

	_, stderr, code := env.run(t, "cover", maidenID, "-o", output, "--width=-5")
	assert.Equal(t, 1, code)
	if !strings.Contains(stderr, scaler.ErrBadWidth.Error()) {
		t.Errorf("expected a bad width error but got: %s", stderr)
	}

	exists, err := afero.Exists(afero.NewOsFs(), output)
	assert.NilErr(t, err)
	assert.Equal(t, false, exists, "no cover should have been written")
}

// TestVersionCommand makes sure the version command prints the version.
func TestVersionCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, code := env.run(t, "version")
	assert.Equal(t, 0, code)
	if !strings.Contains(stdout, version.Version) {
		t.Errorf("version not printed: %s", stdout)
	}
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir which is not available before Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	assert.NilErr(t, err)
	assert.NilErr(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}
