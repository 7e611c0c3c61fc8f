package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iconidentify/blogsmith/internal/config"
)

// cli holds state shared by the subcommands.
type cli struct {
	cfgFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "blogsmith",
		Short: "Generate SEO-ready blog posts and images with AI",
		Long: `blogsmith turns a short prompt into a complete blog post: it enhances
the prompt, drafts the post, analyzes it for SEO and merges the results.

Examples:
  # Print a generated post
  blogsmith generate "Write about home composting for beginners"

  # Generate, store in the database and print JSON
  blogsmith generate "Urban beekeeping basics" --save --json

  # Generate an image
  blogsmith image "a lighthouse at dusk" --style minimal`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log pipeline progress")

	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newImageCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (c *cli) loadConfig() (*config.Config, error) {
	return config.Load(c.cfgFile)
}

// logger writes to w, quietly unless --verbose is set.
func (c *cli) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("blogsmith %s (built %s)\n", Version, BuildTime)
		},
	}
}
