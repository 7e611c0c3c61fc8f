package domain

// DraftedContent is the structured form of a drafted blog response.
// WordCount is always derived from Body.
type DraftedContent struct {
	Title           string   `json:"title"`
	Body            string   `json:"body"`
	MetaDescription string   `json:"meta_description"`
	Summary         string   `json:"summary"`
	Keywords        []string `json:"keywords"`
	Hashtags        []string `json:"hashtags"`
	WordCount       int      `json:"word_count"`
}

// SEOAnalysis is the structured form of an SEO analysis response.
type SEOAnalysis struct {
	PrimaryKeyword          string   `json:"primary_keyword"`
	SecondaryKeywords       []string `json:"secondary_keywords"`
	SEOTitle                string   `json:"seo_title"`
	MetaDescription         string   `json:"meta_description"`
	URLSlug                 string   `json:"url_slug"`
	Hashtags                []string `json:"hashtags"`
	InternalLinkSuggestions []string `json:"internal_link_suggestions"`
	ContentGaps             []string `json:"content_gaps"`
}

// GeneratedBlog merges a draft with its SEO analysis.
type GeneratedBlog struct {
	Title                   string   `json:"title"`
	Content                 string   `json:"content"`
	MetaDescription         string   `json:"meta_description"`
	Keywords                []string `json:"keywords"`
	Hashtags                []string `json:"hashtags"`
	WordCount               int      `json:"word_count"`
	Summary                 string   `json:"summary"`
	PrimaryKeyword          string   `json:"primary_keyword"`
	URLSlug                 string   `json:"url_slug"`
	InternalLinkSuggestions []string `json:"internal_link_suggestions"`
	ContentGaps             []string `json:"content_gaps"`
}

// GenerationResult is the output of a complete pipeline run.
type GenerationResult struct {
	Blog           GeneratedBlog  `json:"blog"`
	EnhancedPrompt string         `json:"enhanced_prompt"`
	Draft          DraftedContent `json:"-"`
	SEO            SEOAnalysis    `json:"seo"`
}
