package handler

import (
	"errors"
	"net/http"

	"revu/internal/domain"
	"revu/internal/middleware"
	"revu/internal/repository"
	"revu/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ApplicationHandler struct {
	svc       *service.ApplicationService
	apps      *repository.ApplicationRepository
	campaigns *repository.CampaignRepository
}

func NewApplicationHandler(
	svc *service.ApplicationService,
	apps *repository.ApplicationRepository,
	campaigns *repository.CampaignRepository,
) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, apps: apps, campaigns: campaigns}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req struct {
		CampaignID uint   `json:"campaign_id" binding:"required"`
		Message    string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign_id required", "details": err.Error()})
		return
	}
	app, err := h.svc.Apply(middleware.GetUserID(c), req.CampaignID, req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListMine returns the caller's applications with their campaigns embedded.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.apps.ListByUserID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list applications"})
		return
	}
	out := make([]gin.H, 0, len(apps))
	for _, app := range apps {
		entry := gin.H{"application": app}
		if campaign, err := h.campaigns.GetByID(app.CampaignID); err == nil {
			entry["campaign"] = campaign
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
		return
	}
	status := domain.ApplicationStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	app, err := h.svc.SetStatus(middleware.GetUserID(c), id, status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) SubmitReview(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}
	var req struct {
		ReviewURL string `json:"review_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "review_url required"})
		return
	}
	app, err := h.svc.SubmitReview(middleware.GetUserID(c), id, req.ReviewURL)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) AwardPoints(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}
	var req struct {
		Points int `json:"points" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "points required"})
		return
	}
	app, err := h.svc.AwardPoints(middleware.GetUserID(c), id, req.Points)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// writeError maps lifecycle errors onto the HTTP taxonomy: 403 for
// role/ownership, 404 for missing entities, 400 for conflicts and bad input.
func (h *ApplicationHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotInfluencer),
		errors.Is(err, service.ErrNotCampaignOwner),
		errors.Is(err, service.ErrNotApplicant):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCampaignNotFound),
		errors.Is(err, service.ErrApplicationNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrAlreadyApplied),
		errors.Is(err, repository.ErrCampaignFull),
		errors.Is(err, repository.ErrAlreadyAwarded),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNotApproved),
		errors.Is(err, service.ErrInvalidReviewURL),
		errors.Is(err, service.ErrReviewMissing),
		errors.Is(err, service.ErrInvalidPoints):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
