package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/quizforge/quizmod-backend/internal/domain"
	"github.com/quizforge/quizmod-backend/internal/service/intake"
	"github.com/quizforge/quizmod-backend/pkg/ctxutil"
)

// intakeService defines the minimal interface needed by FeedbackHandler.
type intakeService interface {
	Submit(ctx context.Context, input intake.SubmitInput) (*intake.ProcessResult, error)
}

// FeedbackHandler serves the feedback submission endpoint.
type FeedbackHandler struct {
	svc intakeService
	log *slog.Logger
}

// NewFeedbackHandler creates a FeedbackHandler.
func NewFeedbackHandler(svc intakeService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, log: logger.With("handler", "feedback")}
}

type submitFeedbackRequest struct {
	QuizID               string  `json:"quizId"`
	Concept              string  `json:"concept"`
	Rating               int     `json:"rating"`
	Comments             *string `json:"comments"`
	DifficultyPerception *string `json:"difficultyPerception"`
	RelevanceScore       *int    `json:"relevanceScore"`
}

type processResultResponse struct {
	FeedbackID          string    `json:"feedbackId"`
	ActionsTaken        []string  `json:"actionsTaken"`
	RequiresHumanReview bool      `json:"requiresHumanReview"`
	ReviewID            *string   `json:"reviewId,omitempty"`
	ReviewPriority      *string   `json:"reviewPriority,omitempty"`
	ReviewReason        *string   `json:"reviewReason,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

// Submit handles POST /feedback. The submitter is taken from the bearer
// token, never from the body. It stores the feedback and runs the full
// moderation pipeline synchronously, so the response already says whether
// the submission was escalated.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req submitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := intake.SubmitInput{
		QuizID:         req.QuizID,
		UserID:         userID.String(),
		Concept:        req.Concept,
		Rating:         req.Rating,
		Comments:       req.Comments,
		RelevanceScore: req.RelevanceScore,
	}
	if req.DifficultyPerception != nil {
		d := domain.DifficultyPerception(*req.DifficultyPerception)
		input.DifficultyPerception = &d
	}

	result, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProcessResultResponse(result))
}

func toProcessResultResponse(result *intake.ProcessResult) processResultResponse {
	resp := processResultResponse{
		FeedbackID:          result.FeedbackID.String(),
		ActionsTaken:        result.ActionsTaken,
		RequiresHumanReview: result.RequiresHumanReview,
		ReviewReason:        result.ReviewReason,
		Timestamp:           result.Timestamp,
	}
	if result.ReviewID != nil {
		s := result.ReviewID.String()
		resp.ReviewID = &s
	}
	if result.ReviewPriority != nil {
		s := result.ReviewPriority.String()
		resp.ReviewPriority = &s
	}
	return resp
}
