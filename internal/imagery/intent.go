package imagery

import "strings"

// Rejection reasons returned by ClassifyIntent.
const (
	ReasonTooShort        = "Prompt too short - minimum 3 characters required"
	ReasonPolicyViolation = "Content policy violation - inappropriate content detected"
)

const minPromptLength = 3

// deniedTerms are matched as substrings of the lower-cased prompt, so
// "harmony" is rejected along with "harm".
var deniedTerms = []string{"nsfw", "adult", "explicit", "violence", "harm"}

// Intent is the policy decision for an image prompt.
type Intent struct {
	Allow  bool
	Reason string
}

// ClassifyIntent applies the length and denylist checks to prompt.
func ClassifyIntent(prompt string) Intent {
	p := strings.ToLower(strings.TrimSpace(prompt))

	if len([]rune(p)) < minPromptLength {
		return Intent{Reason: ReasonTooShort}
	}

	for _, term := range deniedTerms {
		if strings.Contains(p, term) {
			return Intent{Reason: ReasonPolicyViolation}
		}
	}

	return Intent{Allow: true}
}
