package domain

import "time"

// RegisterRequest creates an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate changes the caller's name or email. Empty fields are ignored.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// GenerateRequest starts a blog generation.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// ImageRequest asks for a standalone image.
type ImageRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style,omitempty"`
	Size   string `json:"size,omitempty"`
}

// ImageRole says where an attached image goes in a blog.
type ImageRole string

const (
	ImageRoleHero    ImageRole = "hero"
	ImageRoleSection ImageRole = "section"
)

// AttachImageRequest generates an image and attaches it to a blog.
type AttachImageRequest struct {
	ImageRequest
	Role ImageRole `json:"role"`
}

// AttachImage stores url as the hero image or appends it to the section
// images.
func (b *Blog) AttachImage(role ImageRole, url string) error {
	switch role {
	case ImageRoleHero:
		b.HeroImage = url
	case ImageRoleSection:
		b.SectionImages = append(b.SectionImages, url)
	default:
		return ErrInvalidImageRole
	}
	b.UpdatedAt = time.Now().UTC()
	return nil
}
