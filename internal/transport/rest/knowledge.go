package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/quizforge/quizmod-backend/pkg/ctxutil"
)

// knowledgeRetriever defines the minimal interface needed by KnowledgeHandler.
type knowledgeRetriever interface {
	Retrieve(ctx context.Context, concept, difficulty string) (string, error)
}

// KnowledgeHandler serves read access to the corrective knowledge base, for
// admins inspecting what the quiz generator will be grounded on.
type KnowledgeHandler struct {
	store knowledgeRetriever
	log   *slog.Logger
}

// NewKnowledgeHandler creates a KnowledgeHandler.
func NewKnowledgeHandler(store knowledgeRetriever, logger *slog.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{store: store, log: logger.With("handler", "knowledge")}
}

type knowledgeResponse struct {
	Concept    string `json:"concept"`
	Difficulty string `json:"difficulty"`
	Content    string `json:"content"`
}

// Retrieve returns the knowledge-base context for a concept.
// GET /admin/knowledge?concept=saving&difficulty=beginner
func (h *KnowledgeHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	if !ctxutil.IsAdminCtx(r.Context()) {
		writeError(w, http.StatusForbidden, "admin access required")
		return
	}

	concept := r.URL.Query().Get("concept")
	if concept == "" {
		writeError(w, http.StatusBadRequest, "concept is required")
		return
	}
	difficulty := r.URL.Query().Get("difficulty")
	if difficulty == "" {
		difficulty = "beginner"
	}

	content, err := h.store.Retrieve(r.Context(), concept, difficulty)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, knowledgeResponse{
		Concept:    concept,
		Difficulty: difficulty,
		Content:    content,
	})
}
