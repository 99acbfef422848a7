package src

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ironsmile/following/src/scaler"
)

func newCoverCommand(ctx *commandContext) *cobra.Command {
	var (
		output string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "cover <release-group-id>",
		Short: "Download the front cover of a release group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("an output file is required, use --output")
			}
			if width < 0 {
				return fmt.Errorf("%w: %d", scaler.ErrBadWidth, width)
			}

			_, log, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			client, err := ctx.newCatalog()
			if err != nil {
				return err
			}

			img, err := client.FrontCover(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if width > 0 {
				sclr := scaler.New(cmd.Context())
				defer sclr.Cancel()

				img, err = sclr.Scale(cmd.Context(), bytes.NewReader(img), width)
				if err != nil {
					return fmt.Errorf("scaling cover: %w", err)
				}
			}

			if err := afero.WriteFile(ctx.fsys, output, img, 0o644); err != nil {
				return fmt.Errorf("writing cover: %w", err)
			}

			log.Info().
				Str("release_group", args[0]).
				Str("file", output).
				Int("bytes", len(img)).
				Msg("cover saved")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "File in which the cover is saved")
	flags.IntVarP(&width, "width", "w", 0, "Scale the cover to this width in pixels, as JPEG. Zero keeps the original")

	return cmd
}
