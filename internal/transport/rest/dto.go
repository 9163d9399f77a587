package rest

import (
	"time"

	"github.com/quizforge/quizmod-backend/internal/domain"
)

type biasAnalysisResponse struct {
	HasBias         bool      `json:"hasBias"`
	BiasTypes       []string  `json:"biasTypes"`
	Severity        string    `json:"severity"`
	SpecificIssues  []string  `json:"specificIssues"`
	Recommendations []string  `json:"recommendations"`
	Confidence      float64   `json:"confidence"`
	AnalyzedAt      time.Time `json:"analyzedAt"`
}

type feedbackResponse struct {
	ID                   string                `json:"id"`
	QuizID               string                `json:"quizId"`
	UserID               string                `json:"userId"`
	Concept              string                `json:"concept"`
	Rating               int                   `json:"rating"`
	Comments             *string               `json:"comments,omitempty"`
	DifficultyPerception *string               `json:"difficultyPerception,omitempty"`
	RelevanceScore       *int                  `json:"relevanceScore,omitempty"`
	BiasAnalysis         *biasAnalysisResponse `json:"biasAnalysis,omitempty"`
	Processed            bool                  `json:"processed"`
	CreatedAt            time.Time             `json:"createdAt"`
}

type reviewItemResponse struct {
	ID           string           `json:"id"`
	Position     int64            `json:"position"`
	Feedback     feedbackResponse `json:"feedback"`
	Reason       string           `json:"reason"`
	Priority     string           `json:"priority"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	ReviewedAt   *time.Time       `json:"reviewedAt,omitempty"`
	ReviewedBy   *string          `json:"reviewedBy,omitempty"`
	Decision     *string          `json:"decision,omitempty"`
	AdminNotes   *string          `json:"adminNotes,omitempty"`
	ActionsTaken []string         `json:"actionsTaken"`
}

func toBiasAnalysisResponse(a *domain.BiasAnalysis) *biasAnalysisResponse {
	if a == nil {
		return nil
	}
	return &biasAnalysisResponse{
		HasBias:         a.HasBias,
		BiasTypes:       a.BiasTypes,
		Severity:        a.Severity.String(),
		SpecificIssues:  a.SpecificIssues,
		Recommendations: a.Recommendations,
		Confidence:      a.Confidence,
		AnalyzedAt:      a.AnalyzedAt,
	}
}

func toFeedbackResponse(f domain.FeedbackRecord) feedbackResponse {
	resp := feedbackResponse{
		ID:             f.ID.String(),
		QuizID:         f.QuizID,
		UserID:         f.UserID,
		Concept:        f.Concept,
		Rating:         f.Rating,
		Comments:       f.Comments,
		RelevanceScore: f.RelevanceScore,
		BiasAnalysis:   toBiasAnalysisResponse(f.BiasAnalysis),
		Processed:      f.Processed,
		CreatedAt:      f.CreatedAt,
	}
	if f.DifficultyPerception != nil {
		s := f.DifficultyPerception.String()
		resp.DifficultyPerception = &s
	}
	return resp
}

func toReviewItemResponse(item *domain.ReviewItem) reviewItemResponse {
	resp := reviewItemResponse{
		ID:           item.ID.String(),
		Position:     item.Position,
		Feedback:     toFeedbackResponse(item.Feedback),
		Reason:       item.Reason,
		Priority:     item.Priority.String(),
		Status:       item.Status.String(),
		CreatedAt:    item.CreatedAt,
		ReviewedAt:   item.ReviewedAt,
		AdminNotes:   item.AdminNotes,
		ActionsTaken: item.ActionsTaken,
	}
	if item.ReviewedBy != nil {
		s := item.ReviewedBy.String()
		resp.ReviewedBy = &s
	}
	if item.Decision != nil {
		s := item.Decision.String()
		resp.Decision = &s
	}
	return resp
}

func toReviewItemResponses(items []*domain.ReviewItem) []reviewItemResponse {
	resp := make([]reviewItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toReviewItemResponse(item))
	}
	return resp
}

type biasOverrideRequest struct {
	BiasTypes       []string `json:"biasTypes"`
	Severity        string   `json:"severity"`
	SpecificIssues  []string `json:"specificIssues"`
	Recommendations []string `json:"recommendations"`
}

func (r *biasOverrideRequest) toDomain() *domain.BiasOverride {
	if r == nil {
		return nil
	}
	return &domain.BiasOverride{
		BiasTypes:       r.BiasTypes,
		Severity:        domain.BiasSeverity(r.Severity),
		SpecificIssues:  r.SpecificIssues,
		Recommendations: r.Recommendations,
	}
}
