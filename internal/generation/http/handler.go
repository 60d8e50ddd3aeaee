package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitee-labs/sitee-backend/internal/credits"
	"github.com/sitee-labs/sitee-backend/internal/generation/service"
	historyrepo "github.com/sitee-labs/sitee-backend/internal/history/repository"
	"github.com/sitee-labs/sitee-backend/internal/users/domain"
	"github.com/sitee-labs/sitee-backend/internal/users/repository"
)

// Handler maps the generation endpoints onto the orchestrator, with
// the two-phase credit flow around every billable call.
type Handler struct {
	repo    *repository.Repo
	ledger  *credits.Ledger
	orch    *service.Orchestrator
	history *historyrepo.Repo
}

func New(repo *repository.Repo, ledger *credits.Ledger, orch *service.Orchestrator, history *historyrepo.Repo) *Handler {
	return &Handler{repo: repo, ledger: ledger, orch: orch, history: history}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/generate/", h.generate)
	r.POST("/suggest_improvements/", h.suggest)
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.repo.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	genReq := service.Request{
		Prompt:         req.Prompt,
		UserID:         req.UserID,
		ChatMode:       req.IsChatMode,
		PunjabiMode:    req.IsPunjabiMode,
		TargetLanguage: req.TargetLanguage,
		ImageData:      req.ImageData,
	}
	kind := service.ResolveKind(genReq)

	remaining := user.Credits
	var res *credits.Reservation
	if kind.Billable() {
		res, err = h.ledger.Reserve(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientCredits) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient credits"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		remaining = res.Remaining
	}

	logger := service.NewLogger(ctx)
	out, err := h.orch.Generate(ctx, genReq)
	if err != nil {
		if res != nil {
			if rerr := res.Release(ctx); rerr != nil {
				logger.LogWarnf("generate", "credit refund failed for user=%s: %v", req.UserID, rerr)
			} else {
				remaining = res.Remaining
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during generation"})
		return
	}
	if res != nil {
		res.Commit()
	}

	if h.history.Enabled() {
		if herr := h.history.Record(ctx, historyrepo.Event{
			UserID: req.UserID,
			Kind:   out.Kind.String(),
			Prompt: req.Prompt,
		}); herr != nil {
			logger.LogWarnf("generate", "history record failed: %v", herr)
		}
	}

	key := "html"
	if out.Kind == service.KindReactConvert {
		key = "code"
	}
	c.JSON(http.StatusOK, gin.H{key: out.Text, "credits_remaining": remaining})
}

func (h *Handler) suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.repo.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	project := user.FindProject(req.Timestamp)
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	// Cache hits cost nothing; decide before reserving.
	if text, ok := service.CachedSuggestion(project.Suggestions, req.ForceRegenerate); ok {
		c.JSON(http.StatusOK, gin.H{
			"suggestions":       text,
			"credits_remaining": user.Credits,
			"cached":            true,
		})
		return
	}

	res, err := h.ledger.Reserve(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientCredits) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient credits"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger := service.NewLogger(ctx)
	text, _, err := h.orch.SuggestImprovements(ctx, req.HTMLContent, project.Suggestions, req.ForceRegenerate)
	if err != nil {
		if rerr := res.Release(ctx); rerr != nil {
			logger.LogWarnf("suggest", "credit refund failed for user=%s: %v", req.UserID, rerr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during generation"})
		return
	}
	res.Commit()

	if err := h.repo.SetSuggestions(ctx, req.UserID, req.Timestamp, text); err != nil {
		logger.LogError("suggest", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions":       text,
		"credits_remaining": res.Remaining,
		"cached":            false,
	})
}
