package library

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LocalLibrary implements the Querier for albums stored in a local SQLite
// database.
type LocalLibrary struct {
	// database is the path to the SQLite database file.
	database string

	// sqlFilesFS contains the `migrations` directory with sql-migrate files.
	sqlFilesFS fs.FS

	db  *sql.DB
	log zerolog.Logger
}

// NewLocalLibrary returns a new LocalLibrary which will use for database the file
// specified by databasePath. It opens the database but does not create its schema.
// Call Initialize for that.
func NewLocalLibrary(
	databasePath string,
	sqlFilesFS fs.FS,
	log zerolog.Logger,
) (*LocalLibrary, error) {
	db, err := sql.Open(sqliteDriverName, databasePath)
	if err != nil {
		return nil, fmt.Errorf("opening library database: %w", err)
	}

	// SQLite does not handle concurrent writers well. A single connection
	// serializes all access to the database.
	db.SetMaxOpenConns(1)

	return &LocalLibrary{
		database:   databasePath,
		sqlFilesFS: sqlFilesFS,
		db:         db,
		log:        log,
	}, nil
}

// Initialize makes sure the database schema is up to date. It must be called
// once before the library is used.
func (lib *LocalLibrary) Initialize() error {
	if lib.db == nil {
		return fmt.Errorf("library is not opened")
	}

	if err := lib.db.Ping(); err != nil {
		return fmt.Errorf("connecting to library database: %w", err)
	}

	return lib.applyMigrations()
}

// Close closes the database connection. It is safe to call it as many times as
// you want.
func (lib *LocalLibrary) Close() error {
	if lib.db == nil {
		return nil
	}

	err := lib.db.Close()
	lib.db = nil
	return err
}

// Truncate makes the library forget everything. Also closes the library.
func (lib *LocalLibrary) Truncate() error {
	if err := lib.Close(); err != nil {
		return err
	}
	return os.Remove(lib.database)
}

// Albums implements Querier. Albums are returned in the order in which they
// were first added to the library.
func (lib *LocalLibrary) Albums(ctx context.Context, query string) ([]Album, error) {
	terms, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}

	where, args := whereClauses(terms)
	return queryAlbums(ctx, lib.db, where, "ORDER BY al.id ASC", args...)
}

// SaveAlbum stores the album into the library. Albums are unique by their path.
// Saving an album with a path which is already in the library updates the stored
// record. Returns the album ID in the library.
func (lib *LocalLibrary) SaveAlbum(ctx context.Context, album Album) (int64, error) {
	if album.Path == "" {
		return 0, fmt.Errorf("album %q has no path", album.Name)
	}

	now := time.Now().Unix()
	_, err := lib.db.ExecContext(ctx, `
		INSERT INTO
			albums (
				path, name, album_artist, album_artist_sort, mb_albumid,
				mb_albumartistid, mb_releasegroupid, year, created_at, updated_at
			)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET
			name = excluded.name,
			album_artist = excluded.album_artist,
			album_artist_sort = excluded.album_artist_sort,
			mb_albumid = excluded.mb_albumid,
			mb_albumartistid = excluded.mb_albumartistid,
			mb_releasegroupid = excluded.mb_releasegroupid,
			year = excluded.year,
			updated_at = excluded.updated_at
	`,
		album.Path, album.Name, album.AlbumArtist, album.AlbumArtistSort,
		album.MBAlbumID, album.MBAlbumArtistID, album.MBReleaseGroupID, album.Year,
		now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("saving album %s: %w", album.Path, err)
	}

	var id int64
	err = lib.db.QueryRowContext(ctx, `
		SELECT
			id
		FROM
			albums
		WHERE
			path = ?
	`, album.Path).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("getting ID for album %s: %w", album.Path, err)
	}

	return id, nil
}
