package src

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsmile/following/src/helpers"
	"github.com/ironsmile/following/src/library"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		truncate  bool
		noCleanup bool
	)

	cmd := &cobra.Command{
		Use:   "scan [dir...]",
		Short: "Scan directories for albums and store them in the library",
		Long: `Scan reads the tags of the audio files in the directories and stores
one album per directory in the library database. Without arguments the
libraries from the configuration are scanned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dirs := cfg.Libraries
			if len(args) > 0 {
				dirs, err = absoluteDirs(args)
				if err != nil {
					return err
				}
			}
			if len(dirs) == 0 {
				return errors.New("no directories to scan: give some as arguments " +
					"or set `libraries` in the configuration")
			}

			lib, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			if truncate {
				if err := lib.Truncate(); err != nil {
					return fmt.Errorf("truncating library: %w", err)
				}
				lib, err = ctx.openLibrary()
				if err != nil {
					return err
				}
				defer lib.Close()
			}

			scanner := library.NewScanner(ctx.fsys, log)
			stats, err := scanner.Scan(cmd.Context(), lib, dirs...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d albums, %d of them with MusicBrainz IDs\n",
				stats.Albums, stats.Matched,
			)

			if truncate || noCleanup {
				return nil
			}

			removed, err := lib.Cleanup(cmd.Context(), ctx.fsys, dirs...)
			if err != nil {
				return fmt.Errorf("cleaning up library: %w", err)
			}
			if removed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d albums which are no longer on disk\n", removed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&truncate, "truncate", false,
		"Remove everything from the library before scanning")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false,
		"Keep albums whose directories are no longer on disk")

	return cmd
}

// absoluteDirs returns dirs as absolute paths, relative to the working
// directory. Albums are stored by their path so the same directory must always
// be spelled the same way.
func absoluteDirs(dirs []string) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	abs := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs = append(abs, helpers.AbsolutePath(dir, cwd))
	}
	return abs, nil
}
