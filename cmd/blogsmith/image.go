package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iconidentify/blogsmith/internal/imagery"
	"github.com/iconidentify/blogsmith/pkg/imagegen"
)

type imageOptions struct {
	style  string
	size   string
	asJSON bool
}

func (c *cli) newImageCmd() *cobra.Command {
	opts := imageOptions{}

	cmd := &cobra.Command{
		Use:   "image <prompt>",
		Short: "Generate an image from a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := imagery.ParseStyle(opts.style)
			if err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			gen := imagery.NewGenerator(imagegen.NewClient(cfg.Image), cfg.Image, c.logger(cmd.ErrOrStderr()))
			return runImage(cmd.Context(), cmd.OutOrStdout(), gen, strings.Join(args, " "), style, opts)
		},
	}

	cmd.Flags().StringVar(&opts.style, "style", "", "realistic, illustration, minimal or futuristic")
	cmd.Flags().StringVar(&opts.size, "size", "", "image size, e.g. 1024x1024")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")

	return cmd
}

type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, style imagery.Style, size string) imagery.Result
}

func runImage(ctx context.Context, out io.Writer, gen imageGenerator, prompt string, style imagery.Style, opts imageOptions) error {
	res := gen.GenerateImage(ctx, prompt, style, opts.size)

	if opts.asJSON {
		if err := writeJSON(out, res); err != nil {
			return err
		}
	} else {
		for _, img := range res.Images {
			fmt.Fprintln(out, img.URL)
		}
	}

	if !res.Success {
		return errors.New(res.Error)
	}
	return nil
}
