package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type completerCall struct {
	System string
	User   string
	Model  string
}

// fakeCompleter answers by system instruction: each stage uses a distinct
// one, so tests can script every stage independently.
type fakeCompleter struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []completerCall
}

func newFakeCompleter() *fakeCompleter {
	return &fakeCompleter{
		responses: make(map[string]string),
		errs:      make(map[string]error),
	}
}

func (f *fakeCompleter) on(system, response string) *fakeCompleter {
	f.responses[system] = response
	return f
}

func (f *fakeCompleter) fail(system string, err error) *fakeCompleter {
	f.errs[system] = err
	return f
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user, model string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, completerCall{System: system, User: user, Model: model})
	resp, respOK := f.responses[system]
	err := f.errs[system]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err != nil {
		return "", err
	}
	if !respOK {
		return "", context.DeadlineExceeded
	}
	return resp, nil
}

func (f *fakeCompleter) callsFor(system string) []completerCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []completerCall
	for _, c := range f.calls {
		if c.System == system {
			out = append(out, c)
		}
	}
	return out
}

const compostingEnhanced = `Write an 1,000 word beginner's guide to home composting for urban and suburban homeowners.
Cover what composting is, the green/brown balance, bin options, a step-by-step start, and common mistakes.
Use a friendly, encouraging tone and end with a call to action to start a bin this weekend.`

var compostingMeta = "Learn how to start composting at home with this simple beginner's guide to bins, greens, browns and troubleshooting."

var compostingDraft = strings.Join([]string{
	"# Home Composting for Beginners: Turn Scraps into Garden Gold",
	"",
	compostingMeta,
	"",
	"## Introduction",
	"Every kitchen produces scraps. Composting turns them into rich soil instead of landfill waste.",
	"",
	"## Getting Started",
	"Pick a bin, find a shady spot, and collect your first bucket of greens and browns.",
	"",
	"### Greens and Browns",
	"Mix nitrogen-rich greens with carbon-rich browns at roughly one part to three.",
	"",
	"## Conclusion",
	"Start your bin this weekend and your garden will thank you by spring.",
	"",
	"---",
	"",
	"Summary: A practical guide to starting a home compost bin, balancing greens and browns, and avoiding common mistakes.",
	"Word count: 1050",
	"SEO Keywords: home composting, compost bin, beginner composting",
	"Hashtags: #composting, #gardening, #zerowaste",
}, "\n")

const compostingSEO = `Here is my analysis:

1. **Primary Keyword**
home composting

2. **Secondary Keywords**
compost bin, composting for beginners, greens and browns, backyard compost

3. **SEO Title**
Home Composting for Beginners: A Simple Guide

4. **Meta Description**
Start composting at home today. Learn bins, greens and browns, and easy fixes for common problems in this beginner guide.

5. **URL Slug**
home-composting-for-beginners

6. **Social Media Hashtags**
#HomeComposting, #Compost, #ZeroWaste, #Gardening, #Sustainability

7. **Internal Linking Suggestions**
- Vermicomposting basics
- Using compost in vegetable beds
- Reducing kitchen food waste
- Choosing garden soil

8. **Content Gaps**
- Winter composting tips
- Odor troubleshooting`
