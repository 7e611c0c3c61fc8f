package pipeline

import "strings"

const enhancerSystem = "You are a professional prompt enhancer that creates detailed blog generation prompts."

const enhancerTemplate = `You are a Prompt Enhancement Specialist. Your task is to take a user's basic blog request and transform it into a detailed, comprehensive prompt that will generate high-quality, SEO-optimized blog content.

For the given input, create an enhanced prompt that includes:
1. Specific topic and angle
2. Target audience details
3. Key points to cover
4. Desired tone and style
5. SEO considerations
6. Call-to-action suggestions
7. Length and structure requirements

Original user prompt: {userPrompt}

Enhanced prompt:`

const drafterSystem = "You are an expert blog writer who creates high-quality, SEO-optimized content. Always structure your response with clear headings and engaging content."

const drafterTemplate = `You are a Professional Blog Writer and SEO Specialist. Your task is to create a comprehensive, engaging, and SEO-optimized blog post based on the enhanced prompt provided.

Requirements:
- Write a complete blog post (800-1200 words)
- Include H1, H2, H3 headings for structure
- Write in engaging, conversational tone
- Include practical examples and insights
- Add a compelling conclusion with clear call-to-action
- Ensure content is original and valuable
- Use transition words for smooth flow
- Include relevant statistics or data points where appropriate
- Create a brief summary (50-100 words) that captures the main points

Enhanced Prompt: {enhancedPrompt}

Please generate the blog content in the following format:

# [Blog Title]

[Meta Description - 150-160 characters]

## Introduction
[Introduction content]

## [Main Section Heading]
[Section content]

## [Another Section Heading]
[Section content]

## Conclusion
[Conclusion with CTA]

---

Summary: [Brief 50-100 word summary of the blog]
Word count: [approximate word count]
SEO Keywords: [comma-separated keywords]
Hashtags: [relevant hashtags for social media]`

const analyzerSystem = "You are an SEO expert who provides detailed optimization recommendations for blog content."

const analyzerTemplate = `You are an SEO Optimization Specialist. Your task is to analyze the generated blog content and provide comprehensive SEO recommendations.

For the given blog content, provide:

1. **Primary Keyword**: The main keyword for this blog
2. **Secondary Keywords**: 3-5 related keywords
3. **SEO Title**: Optimized title (50-60 characters)
4. **Meta Description**: Compelling description (150-160 characters)
5. **URL Slug**: SEO-friendly URL slug
6. **Social Media Hashtags**: 5-8 relevant hashtags for Twitter/LinkedIn/Instagram
7. **Internal Linking Suggestions**: 2-3 related topics for internal links
8. **Content Gaps**: Any missing information that should be added

Blog Title: {title}
Blog Content Preview: {contentPreview}

Provide your analysis:`

// excerptLength bounds the body sent to the analyzer.
const excerptLength = 500

func buildEnhancerPrompt(userPrompt string) string {
	return strings.Replace(enhancerTemplate, "{userPrompt}", userPrompt, 1)
}

func buildDrafterPrompt(enhancedPrompt string) string {
	return strings.Replace(drafterTemplate, "{enhancedPrompt}", enhancedPrompt, 1)
}

func buildAnalyzerPrompt(title, content string) string {
	r := strings.NewReplacer("{title}", title, "{contentPreview}", Excerpt(content))
	return r.Replace(analyzerTemplate)
}

// Excerpt returns the first 500 characters of content followed by "...".
func Excerpt(content string) string {
	return truncate(content, excerptLength) + "..."
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
