package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/pipeline"
	"github.com/iconidentify/blogsmith/internal/repository"
	"github.com/iconidentify/blogsmith/internal/service"
	"github.com/iconidentify/blogsmith/internal/validator"
	"github.com/iconidentify/blogsmith/pkg/llm"
)

type generateOptions struct {
	save   bool
	asJSON bool
}

func (c *cli) newGenerateCmd() *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate a complete blog post from a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			if err := validator.NewValidator().ValidateGenerate(&domain.GenerateRequest{Prompt: prompt}); err != nil {
				return fmt.Errorf("%s", validator.Message(err))
			}
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), prompt, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.save, "save", false, "store the post in the database")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func (c *cli) runGenerate(ctx context.Context, out, errOut io.Writer, prompt string, opts generateOptions) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger := c.logger(errOut)

	completer, err := llm.NewCompleter(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	orchestrator := pipeline.New(completer, pipeline.Models{
		Fast:    cfg.LLM.FastModel,
		Quality: cfg.LLM.QualityModel,
	}, logger)

	progress := progressPrinter(errOut)

	if !opts.save {
		res, err := orchestrator.Run(ctx, prompt, progress)
		if err != nil {
			return err
		}
		return printGenerated(out, &res.Blog, res.EnhancedPrompt, opts.asJSON)
	}

	db, err := repository.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	blogs := service.NewBlogService(repository.NewSQLiteBlogRepository(db), orchestrator, nil, logger)
	res, err := blogs.GenerateObserved(ctx, prompt, "", progress)
	if err != nil {
		return err
	}
	if opts.asJSON {
		return writeJSON(out, res)
	}
	fmt.Fprintf(errOut, "saved as %s\n", res.Blog.ID)
	return printBlog(out, res.Blog)
}

func progressPrinter(w io.Writer) pipeline.Observer {
	return pipeline.ObserverFunc(func(stage pipeline.Stage) {
		fmt.Fprintf(w, "-> %s\n", stage)
	})
}

func printGenerated(w io.Writer, g *domain.GeneratedBlog, enhanced string, asJSON bool) error {
	if asJSON {
		return writeJSON(w, struct {
			Blog           *domain.GeneratedBlog `json:"blog"`
			EnhancedPrompt string                `json:"enhanced_prompt"`
		}{g, enhanced})
	}
	blog := domain.NewBlogFromGenerated("", "", g, "")
	return printBlog(w, blog)
}

// printBlog writes a human-readable header followed by the Markdown body.
func printBlog(w io.Writer, b *domain.Blog) error {
	_, err := fmt.Fprintf(w, "Title:       %s\nDescription: %s\nKeywords:    %s\nHashtags:    %s\nWords:       %d (%d min read)\n\n%s\n",
		b.Title,
		b.MetaDescription,
		strings.Join(b.Keywords, ", "),
		formatHashtags(b.Hashtags),
		b.WordCount,
		b.EstimatedReadTime,
		b.Content,
	)
	return err
}

func formatHashtags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + strings.TrimPrefix(t, "#")
	}
	return strings.Join(out, " ")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
