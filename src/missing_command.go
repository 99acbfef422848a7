package src

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsmile/following/src/following"
)

func newMissingCommand(ctx *commandContext) *cobra.Command {
	var (
		after         int
		format        string
		artistCredits bool
	)

	cmd := &cobra.Command{
		Use:   "missing [query...]",
		Short: "List the albums missing for the artists in the library",
		Long: `List the albums missing for the album artists of the albums matching
the query. Without a query all albums in the library are considered.

Query terms are separated by spaces and all of them must match:

  field:value     the field contains value, case-insensitive
  field::regexp   the field matches the regular expression
  value           the album name or album artist contains value

Fields: album, albumartist, albumartist_sort, mb_albumid, mb_albumartistid,
mb_releasegroupid, year and path.`,
		Example: `  following missing
  following missing albumartist:maiden --after 2000
  following missing "albumartist::^The " --format table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if after < 0 {
				return fmt.Errorf("--after must be a year, not %d", after)
			}

			rep, err := following.NewReporter(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}

			_, log, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			lib, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			client, err := ctx.newCatalog()
			if err != nil {
				return err
			}

			rec := following.NewReconciler(lib, client, log)
			rec.ArtistCredits = artistCredits

			return rec.Run(cmd.Context(), strings.Join(args, " "), after, rep)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&after, "after", "a", 0,
		"Only albums released after this year are reported")
	flags.StringVarP(&format, "format", "f", following.FormatText,
		"Output format: text, table or json")
	flags.BoolVar(&artistCredits, "artist-credits", true,
		"Request the artist credits of release groups")

	return cmd
}
