package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/imagery"
)

type stubImages struct {
	res   imagery.Result
	style imagery.Style
	size  string
}

func (s *stubImages) GenerateImage(ctx context.Context, prompt string, style imagery.Style, size string) imagery.Result {
	s.style, s.size = style, size
	return s.res
}

func TestRunImage(t *testing.T) {
	t.Run("prints URLs", func(t *testing.T) {
		gen := &stubImages{res: imagery.Result{Success: true, Images: []imagery.Image{{URL: "https://img.example/1.png"}}}}
		var out bytes.Buffer

		err := runImage(context.Background(), &out, gen, "a lighthouse", imagery.StyleMinimal, imageOptions{size: "512x512"})

		if err != nil {
			t.Fatalf("runImage: %v", err)
		}
		if out.String() != "https://img.example/1.png\n" {
			t.Errorf("output = %q", out.String())
		}
		if gen.style != imagery.StyleMinimal || gen.size != "512x512" {
			t.Errorf("style/size = %q/%q", gen.style, gen.size)
		}
	})

	t.Run("failure returns the reason", func(t *testing.T) {
		gen := &stubImages{res: imagery.Result{Images: []imagery.Image{}, Error: "Prompt violates content policy"}}
		var out bytes.Buffer

		err := runImage(context.Background(), &out, gen, "x", imagery.StyleNone, imageOptions{asJSON: true})

		if err == nil || err.Error() != "Prompt violates content policy" {
			t.Fatalf("err = %v", err)
		}
		var res imagery.Result
		if jsonErr := json.Unmarshal(out.Bytes(), &res); jsonErr != nil {
			t.Fatalf("output is not JSON: %v", jsonErr)
		}
		if res.Success {
			t.Error("expected success=false in JSON output")
		}
	})
}

func TestPrintBlog(t *testing.T) {
	blog := &domain.Blog{
		Title:             "Home Composting",
		MetaDescription:   "Start composting at home.",
		Keywords:          []string{"compost bin", "greens and browns"},
		Hashtags:          []string{"Compost", "#ZeroWaste"},
		WordCount:         450,
		EstimatedReadTime: 3,
		Content:           "## Intro\nBody.",
	}
	var out bytes.Buffer

	if err := printBlog(&out, blog); err != nil {
		t.Fatalf("printBlog: %v", err)
	}

	for _, want := range []string{
		"Title:       Home Composting\n",
		"Keywords:    compost bin, greens and browns\n",
		"Hashtags:    #Compost #ZeroWaste\n",
		"Words:       450 (3 min read)\n",
		"\n## Intro\nBody.\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "blogsmith dev") {
		t.Errorf("output = %q", out.String())
	}
}

func TestGenerateCommand_RejectsShortPrompt(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"generate", "too", "short"})

	err := cmd.Execute()
	if err == nil || err.Error() != "Please provide a prompt with at least 10 characters" {
		t.Errorf("err = %v", err)
	}
}
