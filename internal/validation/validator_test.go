package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/knowledge-base-api/internal/models"
)

func TestValidateRegister(t *testing.T) {
	validator := NewValidator(6)

	tests := []struct {
		name       string
		input      *models.RegisterInput
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid registration",
			input: &models.RegisterInput{
				Email:    "staff@example.com",
				Password: "secret123",
				Name:     "Staff Member",
			},
			wantErrors: 0,
		},
		{
			name: "valid registration with explicit role",
			input: &models.RegisterInput{
				Email:    "editor@example.com",
				Password: "secret123",
				Name:     "Editor",
				Role:     "editor",
			},
			wantErrors: 0,
		},
		{
			name: "missing email",
			input: &models.RegisterInput{
				Password: "secret123",
				Name:     "Staff Member",
			},
			wantErrors: 1,
			wantFields: []string{"email"},
		},
		{
			name: "invalid email format",
			input: &models.RegisterInput{
				Email:    "not-an-email",
				Password: "secret123",
				Name:     "Staff Member",
			},
			wantErrors: 1,
			wantFields: []string{"email"},
		},
		{
			name: "short password",
			input: &models.RegisterInput{
				Email:    "staff@example.com",
				Password: "abc",
				Name:     "Staff Member",
			},
			wantErrors: 1,
			wantFields: []string{"password"},
		},
		{
			name: "padded password does not satisfy minimum",
			input: &models.RegisterInput{
				Email:    "staff@example.com",
				Password: "ab    ",
				Name:     "Staff Member",
			},
			wantErrors: 1,
			wantFields: []string{"password"},
		},
		{
			name: "invalid role",
			input: &models.RegisterInput{
				Email:    "staff@example.com",
				Password: "secret123",
				Name:     "Staff Member",
				Role:     "superuser",
			},
			wantErrors: 1,
			wantFields: []string{"role"},
		},
		{
			name:       "everything missing",
			input:      &models.RegisterInput{},
			wantErrors: 3,
			wantFields: []string{"email", "password", "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateRegister(tt.input)
			if len(errors) != tt.wantErrors {
				t.Errorf("got %d errors, want %d: %+v", len(errors), tt.wantErrors, errors)
			}
			assertFields(t, errors, tt.wantFields)
		})
	}
}

func TestValidateSection(t *testing.T) {
	validator := NewValidator(6)
	negative := -1

	tests := []struct {
		name       string
		input      *models.SectionInput
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid section",
			input:      &models.SectionInput{Name: "Health & Safety", Emoji: "🦺"},
			wantErrors: 0,
		},
		{
			name:       "blank name",
			input:      &models.SectionInput{Name: "   "},
			wantErrors: 1,
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			input:      &models.SectionInput{Name: strings.Repeat("x", 201)},
			wantErrors: 1,
			wantFields: []string{"name"},
		},
		{
			name:       "negative order index",
			input:      &models.SectionInput{Name: "Ops", OrderIndex: &negative},
			wantErrors: 1,
			wantFields: []string{"order_index"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateSection(tt.input)
			if len(errors) != tt.wantErrors {
				t.Errorf("got %d errors, want %d: %+v", len(errors), tt.wantErrors, errors)
			}
			assertFields(t, errors, tt.wantFields)
		})
	}
}

func TestValidateContentItem(t *testing.T) {
	validator := NewValidator(6)

	tests := []struct {
		name       string
		input      *models.ContentItemInput
		wantErrors int
		wantFields []string
	}{
		{
			name: "valid item",
			input: &models.ContentItemInput{
				Title:         "Fire drill procedure",
				SectionID:     1,
				ContainerType: "procedure",
				Content:       json.RawMessage(`{"steps":[]}`),
			},
			wantErrors: 0,
		},
		{
			name: "container type optional",
			input: &models.ContentItemInput{
				Title:     "Notes",
				SectionID: 1,
			},
			wantErrors: 0,
		},
		{
			name: "missing title and section",
			input: &models.ContentItemInput{
				ContainerType: "text",
			},
			wantErrors: 2,
			wantFields: []string{"title", "section_id"},
		},
		{
			name: "unknown container type",
			input: &models.ContentItemInput{
				Title:         "Broken",
				SectionID:     1,
				ContainerType: "carousel",
			},
			wantErrors: 1,
			wantFields: []string{"container_type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateContentItem(tt.input)
			if len(errors) != tt.wantErrors {
				t.Errorf("got %d errors, want %d: %+v", len(errors), tt.wantErrors, errors)
			}
			assertFields(t, errors, tt.wantFields)
		})
	}
}

func TestValidateContainer(t *testing.T) {
	validator := NewValidator(6)

	t.Run("valid container", func(t *testing.T) {
		errors := validator.ValidateContainer(&models.ContainerInput{
			ContainerType: "quiz",
			Content:       json.RawMessage(`{"questions":[]}`),
		})
		if len(errors) != 0 {
			t.Errorf("got %d errors, want 0: %+v", len(errors), errors)
		}
	})

	t.Run("container type required", func(t *testing.T) {
		errors := validator.ValidateContainer(&models.ContainerInput{})
		if len(errors) != 1 || errors[0].Field != "container_type" {
			t.Errorf("unexpected errors: %+v", errors)
		}
	})

	t.Run("unknown container type", func(t *testing.T) {
		errors := validator.ValidateContainer(&models.ContainerInput{ContainerType: "banner"})
		if len(errors) != 1 || errors[0].Field != "container_type" {
			t.Errorf("unexpected errors: %+v", errors)
		}
	})
}

func TestValidateRole(t *testing.T) {
	validator := NewValidator(6)

	if errors := validator.ValidateRole(&models.RoleInput{Role: "admin"}); len(errors) != 0 {
		t.Errorf("valid role rejected: %+v", errors)
	}
	if errors := validator.ValidateRole(&models.RoleInput{Role: "root"}); len(errors) != 1 {
		t.Errorf("invalid role accepted: %+v", errors)
	}
}

func assertFields(t *testing.T, errors []ValidationError, wantFields []string) {
	t.Helper()
	for _, field := range wantFields {
		found := false
		for _, err := range errors {
			if err.Field == field {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected error on field %q, got %+v", field, errors)
		}
	}
}
