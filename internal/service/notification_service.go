package service

import (
	"fmt"

	"revu/internal/domain"
	"revu/internal/models"
	"revu/internal/repository"
	"revu/internal/ws"
)

// NotificationService appends notification rows as a synchronous side effect
// of lifecycle transitions: if the write fails the triggering operation
// fails with it. The WebSocket push on top is best-effort.
type NotificationService struct {
	repo *repository.NotificationRepository
	hub  *ws.Hub
}

func NewNotificationService(repo *repository.NotificationRepository, hub *ws.Hub) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

func (s *NotificationService) Notify(userID uint, notifType, message string, relatedID *uint) error {
	n := &models.Notification{
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		RelatedID: relatedID,
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.PushToUser(userID, n)
	}
	return nil
}

func (s *NotificationService) NotifyApplicationReceived(advertiserID uint, campaignTitle string, applicationID uint) error {
	msg := fmt.Sprintf("A new application was received for campaign '%s'.", campaignTitle)
	return s.Notify(advertiserID, domain.NotificationApplicationReceived, msg, &applicationID)
}

func (s *NotificationService) NotifyApproved(applicantID uint, campaignTitle string, campaignID uint) error {
	msg := fmt.Sprintf("Your application for campaign '%s' was approved.", campaignTitle)
	return s.Notify(applicantID, domain.NotificationApproved, msg, &campaignID)
}

func (s *NotificationService) NotifyRejected(applicantID uint, campaignTitle string, campaignID uint) error {
	msg := fmt.Sprintf("Your application for campaign '%s' was rejected.", campaignTitle)
	return s.Notify(applicantID, domain.NotificationRejected, msg, &campaignID)
}

func (s *NotificationService) NotifyReviewSubmitted(advertiserID uint, campaignTitle string, applicationID uint) error {
	msg := fmt.Sprintf("A review was submitted for campaign '%s'.", campaignTitle)
	return s.Notify(advertiserID, domain.NotificationReviewSubmitted, msg, &applicationID)
}

func (s *NotificationService) NotifyPointsAwarded(applicantID uint, campaignTitle string, points int, applicationID uint) error {
	msg := fmt.Sprintf("%d points were awarded for your review of campaign '%s'.", points, campaignTitle)
	return s.Notify(applicantID, domain.NotificationPointsAwarded, msg, &applicationID)
}
