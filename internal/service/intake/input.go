package intake

import (
	"strings"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

// SubmitInput holds the parameters for submitting quiz feedback.
type SubmitInput struct {
	QuizID               string
	UserID               string
	Concept              string
	Rating               int
	Comments             *string
	DifficultyPerception *domain.DifficultyPerception
	RelevanceScore       *int
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
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
	if i.Rating < 1 || i.Rating > 5 {
		errs = append(errs, domain.FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}
	if i.Comments != nil && len(*i.Comments) > 5000 {
		errs = append(errs, domain.FieldError{Field: "comments", Message: "max 5000 characters"})
	}
	if i.DifficultyPerception != nil && !i.DifficultyPerception.IsValid() {
		errs = append(errs, domain.FieldError{Field: "difficulty_perception", Message: "must be too_easy, just_right or too_hard"})
	}
	if i.RelevanceScore != nil && (*i.RelevanceScore < 1 || *i.RelevanceScore > 5) {
		errs = append(errs, domain.FieldError{Field: "relevance_score", Message: "must be between 1 and 5"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
