package service

import (
	"errors"
	"net/url"
	"time"

	"revu/internal/domain"
	"revu/internal/metrics"
	"revu/internal/models"
	"revu/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrNotInfluencer       = errors.New("only influencers can apply")
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotCampaignOwner    = errors.New("not the advertiser of this campaign")
	ErrNotApplicant        = errors.New("not the owner of this application")
	ErrInvalidStatus       = errors.New("status must be APPROVED or REJECTED")
	ErrInvalidTransition   = errors.New("application is not in a state that allows this transition")
	ErrNotApproved         = errors.New("only approved applications accept a review")
	ErrInvalidReviewURL    = errors.New("review url must be a valid http(s) url")
	ErrReviewMissing       = errors.New("no review has been submitted")
	ErrInvalidPoints       = errors.New("points must be positive")
)

// ApplicationService owns the campaign application lifecycle: enrollment
// under capacity, advertiser approval, review submission and payout. Every
// successful transition emits a notification to the counterparty.
type ApplicationService struct {
	apps      *repository.ApplicationRepository
	campaigns *repository.CampaignRepository
	users     *repository.UserRepository
	notifier  *NotificationService
}

func NewApplicationService(
	apps *repository.ApplicationRepository,
	campaigns *repository.CampaignRepository,
	users *repository.UserRepository,
	notifier *NotificationService,
) *ApplicationService {
	return &ApplicationService{apps: apps, campaigns: campaigns, users: users, notifier: notifier}
}

// Apply enrolls the actor into the campaign. Capacity and the one-application
// -per-pair rule are enforced at the storage layer, so concurrent applies at
// the boundary cannot overfill the campaign.
func (s *ApplicationService) Apply(actorID, campaignID uint, message string) (*models.Application, error) {
	actor, err := s.users.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsInfluencer() {
		return nil, ErrNotInfluencer
	}
	campaign, err := s.campaigns.GetByID(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	app := &models.Application{
		CampaignID: campaignID,
		UserID:     actorID,
		Status:     domain.StatusPending,
		Message:    message,
	}
	if err := s.apps.CreateWithinCapacity(app, campaign.Capacity); err != nil {
		return nil, err
	}
	metrics.ApplicationTransitions.WithLabelValues(string(domain.StatusPending)).Inc()
	if err := s.notifier.NotifyApplicationReceived(campaign.AdvertiserID, campaign.Title, app.ID); err != nil {
		return nil, err
	}
	return app, nil
}

// SetStatus lets the owning advertiser approve or reject a pending
// application. COMPLETED is never caller-settable; it is only reached via
// review submission or payout.
func (s *ApplicationService) SetStatus(actorID, applicationID uint, status domain.ApplicationStatus) (*models.Application, error) {
	if status != domain.StatusApproved && status != domain.StatusRejected {
		return nil, ErrInvalidStatus
	}
	app, campaign, err := s.getOwned(actorID, applicationID)
	if err != nil {
		return nil, err
	}
	if !app.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}
	if err := s.apps.UpdateStatus(applicationID, status); err != nil {
		return nil, err
	}
	app.Status = status
	metrics.ApplicationTransitions.WithLabelValues(string(status)).Inc()
	if status == domain.StatusApproved {
		err = s.notifier.NotifyApproved(app.UserID, campaign.Title, campaign.ID)
	} else {
		err = s.notifier.NotifyRejected(app.UserID, campaign.Title, campaign.ID)
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

// SubmitReview records the applicant's review URL and completes the
// application.
func (s *ApplicationService) SubmitReview(actorID, applicationID uint, reviewURL string) (*models.Application, error) {
	app, err := s.apps.GetByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if app.UserID != actorID {
		return nil, ErrNotApplicant
	}
	if app.Status != domain.StatusApproved {
		return nil, ErrNotApproved
	}
	if !validReviewURL(reviewURL) {
		return nil, ErrInvalidReviewURL
	}
	campaign, err := s.campaigns.GetByID(app.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	now := time.Now()
	if err := s.apps.UpdateReview(applicationID, reviewURL, now); err != nil {
		return nil, err
	}
	app.ReviewURL = &reviewURL
	app.ReviewSubmittedAt = &now
	app.Status = domain.StatusCompleted
	metrics.ApplicationTransitions.WithLabelValues(string(domain.StatusCompleted)).Inc()
	if err := s.notifier.NotifyReviewSubmitted(campaign.AdvertiserID, campaign.Title, app.ID); err != nil {
		return nil, err
	}
	return app, nil
}

// AwardPoints pays out once per application. The points_awarded guard and
// the balance credit run in one storage transaction, so a double payout
// returns ErrAlreadyAwarded and leaves the balance untouched.
func (s *ApplicationService) AwardPoints(actorID, applicationID uint, points int) (*models.Application, error) {
	if points <= 0 {
		return nil, ErrInvalidPoints
	}
	app, campaign, err := s.getOwned(actorID, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ReviewURL == nil || *app.ReviewURL == "" {
		return nil, ErrReviewMissing
	}
	if err := s.apps.Award(applicationID, app.UserID, points); err != nil {
		return nil, err
	}
	app.PointsAwarded = &points
	app.Status = domain.StatusCompleted
	metrics.PointsAwarded.Add(float64(points))
	if err := s.notifier.NotifyPointsAwarded(app.UserID, campaign.Title, points, app.ID); err != nil {
		return nil, err
	}
	return app, nil
}

// getOwned loads the application and its campaign, requiring the actor to be
// the campaign's advertiser.
func (s *ApplicationService) getOwned(actorID, applicationID uint) (*models.Application, *models.Campaign, error) {
	app, err := s.apps.GetByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrApplicationNotFound
		}
		return nil, nil, err
	}
	campaign, err := s.campaigns.GetByID(app.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCampaignNotFound
		}
		return nil, nil, err
	}
	if campaign.AdvertiserID != actorID {
		return nil, nil, ErrNotCampaignOwner
	}
	return app, campaign, nil
}

func validReviewURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
