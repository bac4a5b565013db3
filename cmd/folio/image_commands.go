package main

import (
	"fmt"
	"image"
	"io"

	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/fileutil"
	"folio/internal/imageopt"
)

func newAvatarCommand() *cobra.Command {
	var size int
	var out string
	var dataURI bool

	cmd := &cobra.Command{
		Use:         "avatar <image>",
		Short:       "Crop an image into a circular PNG avatar",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if size <= 0 {
				return fmt.Errorf("--size must be positive, got %d", size)
			}
			src, err := imageopt.Open(args[0])
			if err != nil {
				return err
			}
			avatar := imageopt.Avatar(src, size)

			// --data-uri alone prints without touching the filesystem.
			if !dataURI || cmd.Flags().Changed("out") {
				target, err := config.ExpandPath(out)
				if err != nil {
					return fmt.Errorf("resolve --out: %w", err)
				}
				if err := writePNG(target, avatar); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %dx%d avatar to %s\n", size, size, target)
			}
			if dataURI {
				return printDataURI(cmd.OutOrStdout(), avatar)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 200, "Avatar diameter in pixels")
	cmd.Flags().StringVarP(&out, "out", "o", "avatar.png", "Destination PNG")
	cmd.Flags().BoolVar(&dataURI, "data-uri", false, "Print a base64 PNG data URI")
	return cmd
}

func newInlineCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:         "inline <image>",
		Short:       "Resize an image and print it as a PNG data URI",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("--width and --height must be positive, got %dx%d", width, height)
			}
			src, err := imageopt.Open(args[0])
			if err != nil {
				return err
			}
			return printDataURI(cmd.OutOrStdout(), imageopt.Inline(src, width, height))
		},
	}
	cmd.Flags().IntVar(&width, "width", 300, "Output width in pixels")
	cmd.Flags().IntVar(&height, "height", 200, "Output height in pixels")
	return cmd
}

func writePNG(path string, img image.Image) error {
	if err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return imageopt.EncodePNG(w, img)
	}); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func printDataURI(w io.Writer, img image.Image) error {
	uri, err := imageopt.DataURI(img)
	if err != nil {
		return fmt.Errorf("encode data uri: %w", err)
	}
	_, err = fmt.Fprintln(w, uri)
	return err
}
