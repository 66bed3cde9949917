package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"revu/internal/domain"
	"revu/internal/middleware"
	"revu/internal/models"
	"revu/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CampaignHandler struct {
	campaigns *repository.CampaignRepository
	apps      *repository.ApplicationRepository
	likes     *repository.LikeRepository
	users     *repository.UserRepository
}

func NewCampaignHandler(
	campaigns *repository.CampaignRepository,
	apps *repository.ApplicationRepository,
	likes *repository.LikeRepository,
	users *repository.UserRepository,
) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, apps: apps, likes: likes, users: users}
}

// List returns campaigns with their current applicant count, optionally
// filtered by category ("all" disables the filter).
func (h *CampaignHandler) List(c *gin.Context) {
	category := c.DefaultQuery("category", domain.CategoryAll)
	list, err := h.campaigns.ListByCategory(category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list campaigns"})
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, campaign := range list {
		count, err := h.apps.CountByCampaignID(campaign.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list campaigns"})
			return
		}
		out = append(out, campaignJSON(campaign, gin.H{"applicants_count": count}))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns campaign detail, bumps the view counter and reports whether the
// current user (if any) has liked it.
func (h *CampaignHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}
	campaign, err := h.campaigns.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load campaign"})
		return
	}
	if err := h.campaigns.IncrementViews(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load campaign"})
		return
	}
	campaign.ViewCount++
	count, err := h.apps.CountByCampaignID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load campaign"})
		return
	}
	isLiked := false
	if userID := middleware.GetUserID(c); userID != 0 {
		isLiked, _ = h.likes.Exists(userID, id)
	}
	c.JSON(http.StatusOK, campaignJSON(*campaign, gin.H{
		"applicants_count": count,
		"is_liked":         isLiked,
	}))
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req struct {
		Title        string    `json:"title" binding:"required"`
		Description  string    `json:"description" binding:"required"`
		ThumbnailURL string    `json:"thumbnail_url"`
		Category     string    `json:"category" binding:"required"`
		Location     string    `json:"location"`
		ShopName     string    `json:"shop_name"`
		Capacity     int       `json:"capacity" binding:"required,gt=0"`
		Benefit      string    `json:"benefit"`
		Requirement  string    `json:"requirement"`
		StartDate    time.Time `json:"start_date" binding:"required"`
		EndDate      time.Time `json:"end_date" binding:"required"`
		Images       []string  `json:"images"`
		IsActive     *bool     `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign data", "details": err.Error()})
		return
	}
	if !domain.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	if req.EndDate.Before(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not precede start_date"})
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	campaign := &models.Campaign{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		Category:     req.Category,
		Location:     req.Location,
		ShopName:     req.ShopName,
		Capacity:     req.Capacity,
		Benefit:      req.Benefit,
		Requirement:  req.Requirement,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Images:       req.Images,
		AdvertiserID: middleware.GetUserID(c),
		IsActive:     isActive,
	}
	if err := h.campaigns.Create(campaign); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create campaign"})
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

// ListApplications returns the campaign's applications with applicant
// profiles; only the owning advertiser may see them.
func (h *CampaignHandler) ListApplications(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}
	campaign, err := h.campaigns.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications"})
		return
	}
	if campaign.AdvertiserID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the advertiser of this campaign"})
		return
	}
	apps, err := h.apps.ListByCampaignID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications"})
		return
	}
	out := make([]gin.H, 0, len(apps))
	for _, app := range apps {
		entry := gin.H{"application": app}
		if u, err := h.users.GetByID(app.UserID); err == nil {
			entry["user"] = u.AsProfile()
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}

// ToggleLike flips the (user, campaign) like and returns the resulting state.
func (h *CampaignHandler) ToggleLike(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}
	if _, err := h.campaigns.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle like"})
		return
	}
	liked, err := h.likes.Toggle(middleware.GetUserID(c), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle like"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// AdvertiserCampaigns returns the caller's own campaigns with application
// stats for the dashboard. Approved counts include completed ones.
func (h *CampaignHandler) AdvertiserCampaigns(c *gin.Context) {
	list, err := h.campaigns.ListByAdvertiserID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list campaigns"})
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, campaign := range list {
		apps, err := h.apps.ListByCampaignID(campaign.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list campaigns"})
			return
		}
		var approved, completed int
		for _, a := range apps {
			switch a.Status {
			case domain.StatusApproved:
				approved++
			case domain.StatusCompleted:
				approved++
				completed++
			}
		}
		out = append(out, campaignJSON(campaign, gin.H{
			"applicants_count": len(apps),
			"approved_count":   approved,
			"completed_count":  completed,
		}))
	}
	c.JSON(http.StatusOK, out)
}

func campaignJSON(campaign models.Campaign, extra gin.H) gin.H {
	out := gin.H{
		"id":            campaign.ID,
		"title":         campaign.Title,
		"description":   campaign.Description,
		"thumbnail_url": campaign.ThumbnailURL,
		"category":      campaign.Category,
		"location":      campaign.Location,
		"shop_name":     campaign.ShopName,
		"capacity":      campaign.Capacity,
		"benefit":       campaign.Benefit,
		"requirement":   campaign.Requirement,
		"start_date":    campaign.StartDate,
		"end_date":      campaign.EndDate,
		"images":        campaign.Images,
		"advertiser_id": campaign.AdvertiserID,
		"is_active":     campaign.IsActive,
		"view_count":    campaign.ViewCount,
		"like_count":    campaign.LikeCount,
		"created_at":    campaign.CreatedAt,
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func parseID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
