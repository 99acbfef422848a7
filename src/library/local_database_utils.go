package library

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// queryAlbums executes a database query for albums and returns the result. The
// albums table is available under the `al` alias.
//
// The function arguments are:
//
//   - where - list of clauses which will be joined with "AND" statement. Example:
//     []string{"al.year = ?", "al.name LIKE ?"} will become
//     "WHERE al.year = ? AND al.name LIKE ?". Can be left blank.
//
//   - orderBy - the order by statement as a whole. Can be left blank.
//
//   - queryArgs - arguments to be used in the db.QueryContext call.
func queryAlbums(
	ctx context.Context,
	db *sql.DB,
	where []string,
	orderBy string,
	queryArgs ...any,
) ([]Album, error) {
	var whereStr string
	if len(where) > 0 {
		whereStr = "WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(`
		%s
		%s
		%s
	`, dbAlbumsQuery, whereStr, orderBy)

	rows, err := db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("querying albums: %w", err)
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		var album Album
		err := rows.Scan(
			&album.ID,
			&album.Path,
			&album.Name,
			&album.AlbumArtist,
			&album.AlbumArtistSort,
			&album.MBAlbumID,
			&album.MBAlbumArtistID,
			&album.MBReleaseGroupID,
			&album.Year,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning album row: %w", err)
		}
		albums = append(albums, album)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating album rows: %w", err)
	}

	return albums, nil
}

// dbAlbumsQuery selects all the album columns in the order expected by
// queryAlbums.
const dbAlbumsQuery = `
	SELECT
		al.id,
		al.path,
		al.name,
		al.album_artist,
		al.album_artist_sort,
		al.mb_albumid,
		al.mb_albumartistid,
		al.mb_releasegroupid,
		al.year
	FROM
		albums as al
`
