package src

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ironsmile/following/src/following"
	"github.com/ironsmile/following/src/library"
)

func newAlbumsCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "albums [query...]",
		Short: "List the albums in the library matching a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			albums, err := lib.Albums(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			return printAlbums(cmd.OutOrStdout(), format, albums)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", following.FormatText,
		"Output format: text, table or json")

	return cmd
}

func printAlbums(w io.Writer, format string, albums []library.Album) error {
	switch format {
	case following.FormatText:
		for _, album := range albums {
			if _, err := fmt.Fprintf(w, "%s - %s (%d)\n",
				album.AlbumArtist, album.Name, album.Year,
			); err != nil {
				return err
			}
		}
		return nil
	case following.FormatTable:
		tw := table.NewWriter()
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"Album artist", "Album", "Year", "Release group"})
		for _, album := range albums {
			year := ""
			if album.Year > 0 {
				year = strconv.Itoa(album.Year)
			}
			tw.AppendRow(table.Row{album.AlbumArtist, album.Name, year, album.MBReleaseGroupID})
		}
		_, err := fmt.Fprintln(w, tw.Render())
		return err
	case following.FormatJSON:
		if albums == nil {
			albums = []library.Album{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(albums)
	}

	return fmt.Errorf("%w: %s", following.ErrUnknownFormat, format)
}
