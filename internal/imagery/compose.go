// Package imagery decides whether an image prompt may be generated, shapes
// it for the image provider and runs the generation.
package imagery

import (
	"fmt"
	"strings"
)

// Style selects a prompt suffix.
type Style string

const (
	StyleNone         Style = ""
	StyleRealistic    Style = "realistic"
	StyleIllustration Style = "illustration"
	StyleMinimal      Style = "minimal"
	StyleFuturistic   Style = "futuristic"
)

// Styles lists the styles that add a suffix, in display order.
var Styles = []Style{StyleRealistic, StyleIllustration, StyleMinimal, StyleFuturistic}

var styleSuffixes = map[Style]string{
	StyleRealistic:    ", photorealistic, ultra-detailed, professional photography, realistic lighting",
	StyleIllustration: ", digital illustration, clean vector art, smooth shading, artistic style",
	StyleMinimal:      ", minimal design, flat style, clean composition, simple and elegant",
	StyleFuturistic:   ", futuristic, sci-fi, neon lighting, high-tech cyberpunk, advanced technology",
}

const qualitySuffix = ", high quality, studio lighting, no text, no watermark"

// Valid reports whether s is empty or a known style.
func (s Style) Valid() bool {
	if s == StyleNone {
		return true
	}
	_, ok := styleSuffixes[s]
	return ok
}

// ParseStyle validates a style name from a request.
func ParseStyle(name string) (Style, error) {
	s := Style(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return StyleNone, fmt.Errorf("invalid style %q", name)
	}
	return s, nil
}

// ComposePrompt trims base, appends the suffix for style (none for empty or
// unknown styles) and always appends the quality suffix. Composing an
// already composed prompt appends the suffixes again.
func ComposePrompt(base string, style Style) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(base))
	b.WriteString(styleSuffixes[style])
	b.WriteString(qualitySuffix)
	return b.String()
}
