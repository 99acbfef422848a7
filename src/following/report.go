package following

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Report formats supported by the Reporter.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// ErrUnknownFormat is returned by NewReporter for unsupported formats.
var ErrUnknownFormat = errors.New("unknown report format")

// Reporter writes artist reports to an io.Writer.
//
// The text format is written as reports arrive. The table and JSON formats are
// buffered and written on Flush.
type Reporter struct {
	w      io.Writer
	format string

	tw         table.Writer
	tableRows  int
	noMissing  []string
	jsonReport []ArtistReport
}

// NewReporter returns a Reporter which writes in format to w.
func NewReporter(w io.Writer, format string) (*Reporter, error) {
	rep := &Reporter{
		w:      w,
		format: format,
	}

	switch format {
	case FormatText:
	case FormatTable:
		rep.tw = newMissingTable()
	case FormatJSON:
		rep.jsonReport = []ArtistReport{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return rep, nil
}

// Report adds the report for a single artist.
func (r *Reporter) Report(report ArtistReport) error {
	switch r.format {
	case FormatTable:
		r.addTableRows(report)
		return nil
	case FormatJSON:
		if report.Missing == nil {
			report.Missing = []MissingAlbum{}
		}
		r.jsonReport = append(r.jsonReport, report)
		return nil
	}

	return r.writeText(report)
}

// Flush writes out everything buffered so far.
func (r *Reporter) Flush() error {
	switch r.format {
	case FormatTable:
		if r.tableRows > 0 {
			if _, err := fmt.Fprintln(r.w, r.tw.Render()); err != nil {
				return err
			}
			r.tw = newMissingTable()
			r.tableRows = 0
		}
		for _, artist := range r.noMissing {
			if _, err := fmt.Fprintf(r.w, "No missing albums for artist %s\n", artist); err != nil {
				return err
			}
		}
		r.noMissing = nil
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.jsonReport); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		r.jsonReport = []ArtistReport{}
	}

	return nil
}

func (r *Reporter) writeText(report ArtistReport) error {
	name := reportedName(report)

	if len(report.Missing) == 0 {
		_, err := fmt.Fprintf(r.w, "No missing albums for artist %s\n", name)
		return err
	}

	if _, err := fmt.Fprintf(r.w, "Missing albums for artist %s:\n", name); err != nil {
		return err
	}

	for _, album := range report.Missing {
		_, err := fmt.Fprintf(r.w, "%s - %s (%d)\n", album.Artist, album.Title, album.Year)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Reporter) addTableRows(report ArtistReport) {
	if len(report.Missing) == 0 {
		r.noMissing = append(r.noMissing, reportedName(report))
		return
	}

	for _, album := range report.Missing {
		year := ""
		if album.Year > 0 {
			year = strconv.Itoa(album.Year)
		}
		r.tw.AppendRow(table.Row{album.Artist, album.Title, year, album.ReleaseGroupID})
		r.tableRows++
	}
}

func newMissingTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Artist", "Title", "Year", "Release group"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw
}

// reportedName is the artist name used in the report headers.
func reportedName(report ArtistReport) string {
	if report.Artist.SortName != "" {
		return report.Artist.SortName
	}
	if len(report.Missing) > 0 {
		return report.Missing[0].Artist
	}
	return unknownArtist
}
