package validator

import (
	"errors"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/iconidentify/blogsmith/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestValidateRegister(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     domain.RegisterRequest
		wantErr string
	}{
		{"valid", domain.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}, ""},
		{"missing name", domain.RegisterRequest{Name: "  ", Email: "ada@example.com", Password: "secret1"}, "Name, email, and password are required"},
		{"missing email", domain.RegisterRequest{Name: "Ada", Password: "secret1"}, "Name, email, and password are required"},
		{"bad email", domain.RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "secret1"}, "Please provide a valid email address"},
		{"short password", domain.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "12345"}, "Password must be at least 6 characters long"},
		{"exactly six", domain.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "123456"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRegister(&tt.req)
			checkErr(t, err, tt.wantErr)
		})
	}
}

func TestValidateLogin(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateLogin(&domain.LoginRequest{Email: "a@b.co", Password: "x"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := v.ValidateLogin(&domain.LoginRequest{Email: "a@b.co"})
	checkErr(t, err, "Email and password are required")
}

func TestValidateProfileUpdate(t *testing.T) {
	v := NewValidator()

	checkErr(t, v.ValidateProfileUpdate(&domain.ProfileUpdate{}), "No valid fields to update")
	checkErr(t, v.ValidateProfileUpdate(&domain.ProfileUpdate{Name: "  "}), "No valid fields to update")
	checkErr(t, v.ValidateProfileUpdate(&domain.ProfileUpdate{Name: "Ada"}), "")
	checkErr(t, v.ValidateProfileUpdate(&domain.ProfileUpdate{Email: "bad"}), "Please provide a valid email address")
}

func TestValidateGenerate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		prompt  string
		wantErr bool
	}{
		{"", true},
		{"too short", true},
		{"   123456789   ", true},
		{"1234567890", false},
		{"Write a blog about home composting for beginners", false},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			err := v.ValidateGenerate(&domain.GenerateRequest{Prompt: tt.prompt})
			if tt.wantErr {
				checkErr(t, err, "Please provide a prompt with at least 10 characters")
			} else {
				checkErr(t, err, "")
			}
		})
	}
}

func TestValidateImage(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     domain.ImageRequest
		wantErr string
	}{
		{"valid", domain.ImageRequest{Prompt: "a fox", Style: "realistic", Size: "512x512"}, ""},
		{"no style or size", domain.ImageRequest{Prompt: "a fox"}, ""},
		{"short prompt", domain.ImageRequest{Prompt: " a "}, "Please provide a prompt with at least 3 characters"},
		{"bad style", domain.ImageRequest{Prompt: "a fox", Style: "watercolor"}, "Invalid style. Must be one of: realistic, illustration, minimal, futuristic"},
		{"bad size", domain.ImageRequest{Prompt: "a fox", Size: "huge"}, "Size must look like 1024x1024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, v.ValidateImage(&tt.req), tt.wantErr)
		})
	}
}

func TestValidateAttachImage(t *testing.T) {
	v := NewValidator()

	ok := domain.AttachImageRequest{ImageRequest: domain.ImageRequest{Prompt: "a fox"}, Role: domain.ImageRoleHero}
	checkErr(t, v.ValidateAttachImage(&ok), "")

	noRole := domain.AttachImageRequest{ImageRequest: domain.ImageRequest{Prompt: "a fox"}}
	checkErr(t, v.ValidateAttachImage(&noRole), domain.ErrInvalidImageRole.Error())

	badRole := domain.AttachImageRequest{ImageRequest: domain.ImageRequest{Prompt: "a fox"}, Role: "footer"}
	checkErr(t, v.ValidateAttachImage(&badRole), domain.ErrInvalidImageRole.Error())

	badPrompt := domain.AttachImageRequest{ImageRequest: domain.ImageRequest{Prompt: "x"}, Role: domain.ImageRoleSection}
	checkErr(t, v.ValidateAttachImage(&badPrompt), "Please provide a prompt with at least 3 characters")
}

func TestValidateBlogUpdate(t *testing.T) {
	v := NewValidator()
	draft := domain.BlogStatusDraft
	bogus := domain.BlogStatus("archived")

	tests := []struct {
		name    string
		update  domain.BlogUpdate
		wantErr string
	}{
		{"empty update", domain.BlogUpdate{}, ""},
		{"valid", domain.BlogUpdate{Title: strPtr("New"), Status: &draft, MetaDescription: strPtr("short")}, ""},
		{"blank title", domain.BlogUpdate{Title: strPtr("")}, "Title cannot be empty"},
		{"long meta", domain.BlogUpdate{MetaDescription: strPtr(strings.Repeat("m", 161))}, "Meta description cannot exceed 160 characters"},
		{"meta at limit", domain.BlogUpdate{MetaDescription: strPtr(strings.Repeat("m", 160))}, ""},
		{"bad status", domain.BlogUpdate{Status: &bogus}, "Status must be draft or published"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, v.ValidateBlogUpdate(&tt.update), tt.wantErr)
		})
	}
}

func TestMessage(t *testing.T) {
	err := validation.Errors{
		"b": errors.New("second"),
		"a": errors.New("first"),
		"c": errors.New("first"),
	}
	if got := Message(err); got != "first; second" {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(errors.New("plain")); got != "plain" {
		t.Errorf("Message() = %q", got)
	}
}

func checkErr(t *testing.T, err error, want string) {
	t.Helper()
	if want == "" {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if got := Message(err); got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}
