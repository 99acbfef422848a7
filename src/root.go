package src

import (
	"io"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newRootCommand(sqlFiles fs.FS, fsys afero.Fs, stderr io.Writer) *cobra.Command {
	ctx := newCommandContext(sqlFiles, fsys, stderr)

	rootCmd := &cobra.Command{
		Use:   "following",
		Short: "Finds albums of your artists which are missing from your library",
		Long: `following looks at the album artists in your music library and asks
MusicBrainz for their discographies. Albums which are published but are not
in the library are reported as missing.

Albums are found by scanning the tags of your audio files. Only albums tagged
with MusicBrainz IDs are considered.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	flags.StringVar(&ctx.logLevelFlag, "log-level", "", "Log level: trace, debug, info, warn or error")
	flags.BoolVarP(&ctx.verbose, "verbose", "v", false, "Verbose output, same as --log-level=debug")

	rootCmd.AddCommand(newMissingCommand(ctx))
	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newAlbumsCommand(ctx))
	rootCmd.AddCommand(newCoverCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
