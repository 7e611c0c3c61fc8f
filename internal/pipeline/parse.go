package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iconidentify/blogsmith/internal/domain"
)

// ParseStatus tells whether every field came from the model response.
type ParseStatus int

const (
	// Parsed means every field was extracted.
	Parsed ParseStatus = iota
	// PartiallyParsed means at least one field was filled with a default.
	PartiallyParsed
)

func (s ParseStatus) String() string {
	if s == Parsed {
		return "parsed"
	}
	return "partially_parsed"
}

// ParseResult is the outcome of parsing a free-text model response. Value
// is always complete; Missing names the fields that were defaulted.
type ParseResult[T any] struct {
	Value   T
	Status  ParseStatus
	Missing []string
}

func newParseResult[T any](v T, missing []string) ParseResult[T] {
	status := Parsed
	if len(missing) > 0 {
		status = PartiallyParsed
	}
	return ParseResult[T]{Value: v, Status: status, Missing: missing}
}

// Draft fallbacks.
const (
	DefaultDraftTitle  = "Generated Blog Post"
	metaFallbackLen    = 160
	summaryFallbackLen = 150
)

var (
	defaultDraftKeywords = []string{"blog", "content", "article"}
	defaultDraftHashtags = []string{"blog", "content"}
)

// ParseDraft extracts a DraftedContent from a drafted blog response.
//
// Lines are classified in order, first match wins: the first "# " line is
// the title, even when its text is empty; "Summary:", "SEO Keywords:" and "Hashtags:" lines fill their
// fields; blank and "Word count:" lines are dropped; the first remaining
// line of 51 to 199 characters becomes the meta description; everything
// else is body. Word count is computed from the body.
func ParseDraft(raw string) ParseResult[domain.DraftedContent] {
	var (
		d         domain.DraftedContent
		body      strings.Builder
		haveTitle bool
	)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "# ") && !haveTitle:
			d.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			haveTitle = true
		case strings.HasPrefix(line, "# "):
			body.WriteString(line + "\n")
		case strings.Contains(line, "Summary:"):
			d.Summary = afterLabel(line, "Summary:")
		case strings.Contains(line, "SEO Keywords:"):
			d.Keywords = splitList(afterLabel(line, "SEO Keywords:"), false)
		case strings.Contains(line, "Hashtags:"):
			d.Hashtags = splitList(afterLabel(line, "Hashtags:"), true)
		case trimmed == "" || strings.Contains(line, "Word count:"):
			// dropped
		case d.MetaDescription == "" && isMetaCandidate(trimmed):
			d.MetaDescription = trimmed
		default:
			body.WriteString(line + "\n")
		}
	}

	d.Body = strings.TrimSpace(body.String())
	d.WordCount = domain.CountWords(d.Body)

	missing := FillDraftFallbacks(&d)
	return newParseResult(d, missing)
}

// FillDraftFallbacks fills every empty field of d with its default and
// returns the names of the fields it filled.
func FillDraftFallbacks(d *domain.DraftedContent) []string {
	var missing []string

	if d.Title == "" {
		d.Title = DefaultDraftTitle
		missing = append(missing, "title")
	}
	if d.MetaDescription == "" {
		d.MetaDescription = truncate(d.Body, metaFallbackLen)
		missing = append(missing, "meta_description")
	}
	if d.Summary == "" {
		d.Summary = truncate(d.Body, summaryFallbackLen) + "..."
		missing = append(missing, "summary")
	}
	if len(d.Keywords) == 0 {
		d.Keywords = append([]string(nil), defaultDraftKeywords...)
		missing = append(missing, "keywords")
	}
	if len(d.Hashtags) == 0 {
		d.Hashtags = append([]string(nil), defaultDraftHashtags...)
		missing = append(missing, "hashtags")
	}
	d.WordCount = domain.CountWords(d.Body)

	return missing
}

func isMetaCandidate(trimmed string) bool {
	n := utf8.RuneCountInString(trimmed)
	return n > 50 && n < 200
}

func afterLabel(line, label string) string {
	i := strings.Index(line, label)
	return strings.TrimSpace(line[i+len(label):])
}

func splitList(s string, hashtags bool) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if hashtags {
			item = strings.TrimSpace(strings.TrimLeft(item, "#"))
		}
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// SEO fallbacks.
const (
	DefaultPrimaryKeyword  = "blog-content"
	DefaultSEOTitle        = "Generated Blog Post"
	DefaultMetaDescription = "Learn about this interesting topic through our comprehensive blog post."
	DefaultURLSlug         = "generated-blog-post"

	maxSecondaryKeywords = 5
	maxHashtags          = 8
	maxInternalLinks     = 3
	seoTitleLen          = 60
)

var (
	defaultSecondaryKeywords = []string{"blog", "content"}
	defaultSEOHashtags       = []string{"blog", "content"}
)

type seoSection int

const (
	sectionNone seoSection = iota
	sectionPrimary
	sectionSecondary
	sectionTitle
	sectionMeta
	sectionSlug
	sectionHashtags
	sectionLinks
	sectionGaps
)

// seoLabels maps lower-cased bold labels to sections.
var seoLabels = []struct {
	label   string
	section seoSection
}{
	{"**primary keyword", sectionPrimary},
	{"**secondary keywords", sectionSecondary},
	{"**seo title", sectionTitle},
	{"**meta description", sectionMeta},
	{"**url slug", sectionSlug},
	{"**social media hashtags", sectionHashtags},
	{"**internal linking suggestions", sectionLinks},
	{"**content gaps", sectionGaps},
}

var listMarker = regexp.MustCompile(`^(?:[-*•]\s+|\d+[.)]\s+)`)

// ParseSEO extracts an SEOAnalysis from a labeled analysis response.
//
// A line carrying a bold section label switches the current section; text
// after the label on the same line counts as the section's first line.
// Single-value sections keep their first line. List sections take either a
// comma-separated line or one item per line up to their cap.
func ParseSEO(raw string) ParseResult[domain.SEOAnalysis] {
	a := domain.SEOAnalysis{
		InternalLinkSuggestions: []string{},
		ContentGaps:             []string{},
	}
	current := sectionNone

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if section, rest, ok := matchSEOLabel(trimmed); ok {
			current = section
			if rest == "" {
				continue
			}
			trimmed = rest
		}
		if current == sectionNone {
			continue
		}

		content := cleanSEOLine(trimmed)
		if content == "" {
			continue
		}
		addSEOValue(&a, current, content)
	}

	missing := FillSEOFallbacks(&a)
	return newParseResult(a, missing)
}

// indexFold is a case-insensitive strings.Index for an ASCII substr that
// returns a byte offset into s itself.
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

func matchSEOLabel(line string) (seoSection, string, bool) {
	for _, l := range seoLabels {
		i := indexFold(line, l.label)
		if i < 0 {
			continue
		}
		rest := line[i+len(l.label):]
		rest = strings.TrimLeft(rest, ":* \t")
		return l.section, strings.TrimSpace(rest), true
	}
	return sectionNone, "", false
}

func cleanSEOLine(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "**")
	s = strings.TrimSuffix(s, "**")
	s = listMarker.ReplaceAllString(strings.TrimSpace(s), "")
	s = strings.TrimPrefix(s, "**")
	s = strings.TrimSuffix(s, "**")
	return strings.TrimSpace(s)
}

func addSEOValue(a *domain.SEOAnalysis, section seoSection, content string) {
	switch section {
	case sectionPrimary:
		if a.PrimaryKeyword == "" {
			a.PrimaryKeyword = content
		}
	case sectionSecondary:
		a.SecondaryKeywords = addListValue(a.SecondaryKeywords, content, maxSecondaryKeywords, false)
	case sectionTitle:
		if a.SEOTitle == "" {
			a.SEOTitle = content
		}
	case sectionMeta:
		if a.MetaDescription == "" {
			a.MetaDescription = content
		}
	case sectionSlug:
		if a.URLSlug == "" {
			a.URLSlug = strings.Trim(content, "`/ ")
		}
	case sectionHashtags:
		a.Hashtags = addListValue(a.Hashtags, content, maxHashtags, true)
	case sectionLinks:
		if len(a.InternalLinkSuggestions) < maxInternalLinks {
			a.InternalLinkSuggestions = append(a.InternalLinkSuggestions, content)
		}
	case sectionGaps:
		a.ContentGaps = append(a.ContentGaps, content)
	}
}

// addListValue applies a list section line: a comma-separated line replaces
// the list, a single item is appended while under the cap.
func addListValue(list []string, content string, limit int, hashtags bool) []string {
	if strings.Contains(content, ",") {
		items := splitList(content, hashtags)
		if len(items) > limit {
			items = items[:limit]
		}
		return items
	}

	if hashtags && strings.Count(content, "#") > 1 {
		for _, tag := range strings.Fields(content) {
			list = addListValue(list, tag, limit, true)
		}
		return list
	}

	if len(list) >= limit {
		return list
	}
	if hashtags {
		content = strings.TrimSpace(strings.TrimLeft(content, "#"))
	}
	if content == "" {
		return list
	}
	return append(list, content)
}

// FillSEOFallbacks fills every empty field of a with its default and
// returns the names of the fields it filled.
func FillSEOFallbacks(a *domain.SEOAnalysis) []string {
	var missing []string

	if a.PrimaryKeyword == "" {
		a.PrimaryKeyword = DefaultPrimaryKeyword
		missing = append(missing, "primary_keyword")
	}
	if len(a.SecondaryKeywords) == 0 {
		a.SecondaryKeywords = append([]string(nil), defaultSecondaryKeywords...)
		missing = append(missing, "secondary_keywords")
	}
	if a.SEOTitle == "" {
		a.SEOTitle = DefaultSEOTitle
		missing = append(missing, "seo_title")
	}
	if a.MetaDescription == "" {
		a.MetaDescription = DefaultMetaDescription
		missing = append(missing, "meta_description")
	}
	if a.URLSlug == "" {
		a.URLSlug = DefaultURLSlug
		missing = append(missing, "url_slug")
	}
	if len(a.Hashtags) == 0 {
		a.Hashtags = append([]string(nil), defaultSEOHashtags...)
		missing = append(missing, "hashtags")
	}
	if a.InternalLinkSuggestions == nil {
		a.InternalLinkSuggestions = []string{}
	}
	if a.ContentGaps == nil {
		a.ContentGaps = []string{}
	}

	return missing
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
)

// DefaultSEOAnalysis synthesizes an analysis from the title and content
// when no model response is available.
func DefaultSEOAnalysis(title, content string) domain.SEOAnalysis {
	keyword := whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")

	hashtags := []string{"blog", "content"}
	if words := strings.Fields(title); len(words) > 0 {
		if first := strings.ToLower(words[0]); first != "" {
			hashtags = append(hashtags, first)
		}
	}

	a := domain.SEOAnalysis{
		PrimaryKeyword:          keyword,
		SecondaryKeywords:       []string{"content", "blog", "article"},
		SEOTitle:                truncate(title, seoTitleLen),
		MetaDescription:         truncate(content, metaFallbackLen),
		URLSlug:                 nonSlugChars.ReplaceAllString(keyword, ""),
		Hashtags:                hashtags,
		InternalLinkSuggestions: []string{},
		ContentGaps:             []string{},
	}
	FillSEOFallbacks(&a)
	return a
}
