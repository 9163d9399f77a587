package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackRecord is one piece of user (or admin-synthesized) feedback about
// a quiz. Identity is immutable once created; the bias analysis is attached
// at creation time and never re-run retroactively.
type FeedbackRecord struct {
	ID                   uuid.UUID
	QuizID               string
	UserID               string
	Concept              string
	Rating               int
	Comments             *string
	DifficultyPerception *DifficultyPerception
	RelevanceScore       *int
	BiasAnalysis         *BiasAnalysis
	Processed            bool
	CreatedAt            time.Time
}

// HasComments reports whether the record carries non-empty free text.
func (f *FeedbackRecord) HasComments() bool {
	return f.Comments != nil && *f.Comments != ""
}

// FeedbackInsights is an aggregate view over collected feedback, used by the
// admin dashboard.
type FeedbackInsights struct {
	TotalFeedbacks         int
	AverageRating          float64
	BiasDetectedCount      int
	BiasPercentage         float64
	DifficultyDistribution map[DifficultyPerception]int
	ConceptsNeedingWork    []ConceptHealth
	OverallHealth          string
}

// ConceptHealth flags a concept whose average rating fell below threshold.
type ConceptHealth struct {
	Concept       string
	AverageRating float64
	FeedbackCount int
}
