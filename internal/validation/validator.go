// Package validation checks API payloads before they reach the service
// layer and reports every problem at once rather than failing on the
// first.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/knowledge-base-api/internal/container"
	"github.com/knowledge-base-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	maxNameLength  = 200
	maxTitleLength = 300
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator provides validation methods
type Validator struct {
	minPasswordLength int
}

// NewValidator creates a new validator instance
func NewValidator(minPasswordLength int) *Validator {
	return &Validator{minPasswordLength: minPasswordLength}
}

// ValidateRegister validates an account creation payload
func (v *Validator) ValidateRegister(input *models.RegisterInput) []ValidationError {
	var errors []ValidationError

	if input.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(input.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: input.Email})
	}

	if password := strings.TrimSpace(input.Password); password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	} else if len(password) < v.minPasswordLength {
		errors = append(errors, ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", v.minPasswordLength),
		})
	}

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}

	if input.Role != "" && !models.ValidRoles[input.Role] {
		errors = append(errors, ValidationError{
			Field:   "role",
			Message: "invalid role, must be one of: user, editor, admin",
			Value:   input.Role,
		})
	}

	return errors
}

// ValidateLogin validates a login payload
func (v *Validator) ValidateLogin(input *models.LoginInput) []ValidationError {
	var errors []ValidationError

	if input.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	}
	if input.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	}

	return errors
}

// ValidateRole validates an admin role change payload
func (v *Validator) ValidateRole(input *models.RoleInput) []ValidationError {
	if !models.ValidRoles[input.Role] {
		return []ValidationError{{
			Field:   "role",
			Message: "invalid role, must be one of: user, editor, admin",
			Value:   input.Role,
		}}
	}
	return nil
}

// ValidateSection validates a section create/update payload
func (v *Validator) ValidateSection(input *models.SectionInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	} else if len(input.Name) > maxNameLength {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name exceeds maximum of %d characters", maxNameLength),
		})
	}

	if input.OrderIndex != nil && *input.OrderIndex < 0 {
		errors = append(errors, ValidationError{Field: "order_index", Message: "order_index must not be negative", Value: *input.OrderIndex})
	}

	return errors
}

// ValidateContentItem validates a content item create/update payload.
// The content body itself is not validated: any JSON shape is accepted
// and repaired by the normalizer.
func (v *Validator) ValidateContentItem(input *models.ContentItemInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	} else if len(input.Title) > maxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title exceeds maximum of %d characters", maxTitleLength),
		})
	}

	if input.SectionID <= 0 {
		errors = append(errors, ValidationError{Field: "section_id", Message: "section_id is required"})
	}

	if input.ContainerType != "" {
		if _, ok := container.ParseType(input.ContainerType); !ok {
			errors = append(errors, ValidationError{
				Field:   "container_type",
				Message: invalidContainerTypeMessage(),
				Value:   input.ContainerType,
			})
		}
	}

	if input.OrderIndex != nil && *input.OrderIndex < 0 {
		errors = append(errors, ValidationError{Field: "order_index", Message: "order_index must not be negative", Value: *input.OrderIndex})
	}

	return errors
}

// ValidateContainer validates a container instance payload
func (v *Validator) ValidateContainer(input *models.ContainerInput) []ValidationError {
	var errors []ValidationError

	if input.ContainerType == "" {
		errors = append(errors, ValidationError{Field: "container_type", Message: "container_type is required"})
	} else if _, ok := container.ParseType(input.ContainerType); !ok {
		errors = append(errors, ValidationError{
			Field:   "container_type",
			Message: invalidContainerTypeMessage(),
			Value:   input.ContainerType,
		})
	}

	if input.OrderIndex != nil && *input.OrderIndex < 0 {
		errors = append(errors, ValidationError{Field: "order_index", Message: "order_index must not be negative", Value: *input.OrderIndex})
	}

	return errors
}

func invalidContainerTypeMessage() string {
	names := make([]string, 0, len(container.Types))
	for _, t := range container.Types {
		names = append(names, string(t))
	}
	return "invalid container type, must be one of: " + strings.Join(names, ", ")
}
