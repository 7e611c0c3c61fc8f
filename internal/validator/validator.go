// Package validator checks API requests before they reach the services.
package validator

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/imagery"
)

const (
	MinPasswordLength     = 6
	MinPromptLength       = 10
	MinImagePromptLength  = 3
	MaxMetaDescriptionLen = 160
)

var (
	sizeRegex   = regexp.MustCompile(`^[0-9]{2,4}x[0-9]{2,4}$`)
	validStatus = []interface{}{domain.BlogStatusDraft, domain.BlogStatusPublished}
	validRoles  = []interface{}{domain.ImageRoleHero, domain.ImageRoleSection}
)

// Validator provides validation methods for API requests.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRegister validates a registration request.
func (v *Validator) ValidateRegister(r *domain.RegisterRequest) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.By(notBlank("Name, email, and password are required")),
		),
		validation.Field(&r.Email,
			validation.Required.Error("Name, email, and password are required"),
			is.EmailFormat.Error("Please provide a valid email address"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Name, email, and password are required"),
			validation.RuneLength(MinPasswordLength, 0).Error("Password must be at least 6 characters long"),
		),
	)
}

// ValidateLogin validates a login request.
func (v *Validator) ValidateLogin(r *domain.LoginRequest) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required.Error("Email and password are required")),
		validation.Field(&r.Password, validation.Required.Error("Email and password are required")),
	)
}

// ValidateProfileUpdate requires at least one non-blank field.
func (v *Validator) ValidateProfileUpdate(r *domain.ProfileUpdate) error {
	if strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.Email) == "" {
		return validation.NewError("no_fields", "No valid fields to update")
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, is.EmailFormat.Error("Please provide a valid email address")),
	)
}

// ValidateGenerate validates a blog generation request.
func (v *Validator) ValidateGenerate(r *domain.GenerateRequest) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Prompt,
			validation.By(minTrimmed(MinPromptLength, "Please provide a prompt with at least 10 characters")),
		),
	)
}

// ValidateImage validates a standalone image request.
func (v *Validator) ValidateImage(r *domain.ImageRequest) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Prompt,
			validation.By(minTrimmed(MinImagePromptLength, "Please provide a prompt with at least 3 characters")),
		),
		validation.Field(&r.Style, validation.By(styleRule)),
		validation.Field(&r.Size, validation.Match(sizeRegex).Error("Size must look like 1024x1024")),
	)
}

// ValidateAttachImage validates an image attachment request.
func (v *Validator) ValidateAttachImage(r *domain.AttachImageRequest) error {
	if err := v.ValidateImage(&r.ImageRequest); err != nil {
		return err
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Role,
			validation.Required.Error(domain.ErrInvalidImageRole.Error()),
			validation.In(validRoles...).Error(domain.ErrInvalidImageRole.Error()),
		),
	)
}

// ValidateBlogUpdate validates a partial blog update.
func (v *Validator) ValidateBlogUpdate(u *domain.BlogUpdate) error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Title, validation.NilOrNotEmpty.Error("Title cannot be empty")),
		validation.Field(&u.Content, validation.NilOrNotEmpty.Error("Content cannot be empty")),
		validation.Field(&u.MetaDescription,
			validation.RuneLength(0, MaxMetaDescriptionLen).Error("Meta description cannot exceed 160 characters"),
		),
		validation.Field(&u.Status, validation.In(validStatus...).Error("Status must be draft or published")),
	)
}

// Message flattens a validation error into a single user-facing string.
// Field errors are joined in field order.
func Message(err error) string {
	var errs validation.Errors
	if e, ok := err.(validation.Errors); ok {
		errs = e
	} else {
		return err.Error()
	}

	seen := make(map[string]bool)
	var parts []string
	for _, key := range sortedKeys(errs) {
		msg := Message(errs[key])
		if !seen[msg] {
			seen[msg] = true
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

func minTrimmed(n int, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if utf8.RuneCountInString(strings.TrimSpace(s)) < n {
			return validation.NewError("too_short", msg)
		}
		return nil
	}
}

func notBlank(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("required", msg)
		}
		return nil
	}
}

func styleRule(value interface{}) error {
	s, _ := value.(string)
	if _, err := imagery.ParseStyle(s); err != nil {
		names := make([]string, 0, len(imagery.Styles))
		for _, st := range imagery.Styles {
			names = append(names, string(st))
		}
		return validation.NewError("invalid_style", "Invalid style. Must be one of: "+strings.Join(names, ", "))
	}
	return nil
}

func sortedKeys(errs validation.Errors) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
