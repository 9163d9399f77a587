package review

import (
	"strings"

	"github.com/google/uuid"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

// ResolveInput holds the parameters for a moderator decision.
type ResolveInput struct {
	ReviewID   uuid.UUID
	Decision   domain.ReviewAction
	AdminNotes *string
	// BiasOverride is required for flag_bias and optional for
	// update_content, where it replaces the stored analysis.
	BiasOverride *domain.BiasOverride
	// ForceUpdate confirms the knowledge-base write for update_content.
	ForceUpdate bool
}

// Validate checks all fields and collects all errors.
func (i ResolveInput) Validate() error {
	var errs []domain.FieldError

	if i.ReviewID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "review_id", Message: "required"})
	}
	if !i.Decision.IsValid() {
		errs = append(errs, domain.FieldError{Field: "decision", Message: "must be approve, reject, flag_bias, update_content or dismiss"})
	}
	if i.Decision.RequiresOverride() && i.BiasOverride == nil {
		errs = append(errs, domain.FieldError{Field: "bias_override", Message: "required for flag_bias"})
	}
	if i.AdminNotes != nil && len(*i.AdminNotes) > 5000 {
		errs = append(errs, domain.FieldError{Field: "admin_notes", Message: "max 5000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}

	if i.BiasOverride != nil {
		if err := i.BiasOverride.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ManualFlagInput holds the parameters for an admin-initiated bias flag.
type ManualFlagInput struct {
	QuizID     string
	UserID     string
	Concept    string
	Override   domain.BiasOverride
	AdminNotes *string
}

// Validate checks all fields and collects all errors.
func (i ManualFlagInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.QuizID) == "" {
		errs = append(errs, domain.FieldError{Field: "quiz_id", Message: "required"})
	}
	if strings.TrimSpace(i.UserID) == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if strings.TrimSpace(i.Concept) == "" {
		errs = append(errs, domain.FieldError{Field: "concept", Message: "required"})
	}
	if i.AdminNotes != nil && len(*i.AdminNotes) > 5000 {
		errs = append(errs, domain.FieldError{Field: "admin_notes", Message: "max 5000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}

	return i.Override.Validate()
}

// ListInput holds the parameters for listing queue items.
type ListInput struct {
	Status   *domain.ReviewStatus
	Priority *domain.ReviewPriority
	Limit    int
	Offset   int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be pending or reviewed"})
	}
	if i.Priority != nil && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "must be urgent, high, medium or low"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
