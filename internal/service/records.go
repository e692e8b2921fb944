package service

import (
	"context"
	"errors"

	"github.com/4rnv/safebalance/internal/models"
)

// Record-management errors surfaced to the HTTP layer
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrAccountExists = errors.New("virtual account already exists for this user")
)

// insightPageSize caps insight listings
const insightPageSize = 20

// CreateAccount opens a virtual account for a user (at most one per user)
func (s *Service) CreateAccount(ctx context.Context, account *models.Account) error {
	user, err := s.store.FindUserByID(ctx, account.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	existing, err := s.store.FindAccountByUserID(ctx, account.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAccountExists
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		return err
	}
	s.log.Infof("Account created for user %s", account.UserID)
	return nil
}

// GetAccountByUser returns a user's virtual account, or ErrAccountNotFound
func (s *Service) GetAccountByUser(ctx context.Context, userID string) (*models.Account, error) {
	account, err := s.store.FindAccountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// CreateScheduledPayment stores a recurring obligation for an existing user
func (s *Service) CreateScheduledPayment(ctx context.Context, payment *models.ScheduledPayment) error {
	user, err := s.store.FindUserByID(ctx, payment.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.store.CreateScheduledPayment(ctx, payment)
}

// ListScheduledPayments lists a user's recurring obligations
func (s *Service) ListScheduledPayments(ctx context.Context, userID string) ([]models.ScheduledPayment, error) {
	return s.store.FindPaymentsByUser(ctx, userID)
}

// DeleteScheduledPayment removes an obligation; false when it did not exist
func (s *Service) DeleteScheduledPayment(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteScheduledPayment(ctx, id)
}

// CreateQuestionnaire stores the onboarding questionnaire for an existing user
func (s *Service) CreateQuestionnaire(ctx context.Context, q *models.Questionnaire) error {
	user, err := s.store.FindUserByID(ctx, q.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.store.CreateQuestionnaire(ctx, q)
}

// GetQuestionnaireByUser returns a user's questionnaire, or nil
func (s *Service) GetQuestionnaireByUser(ctx context.Context, userID string) (*models.Questionnaire, error) {
	return s.store.FindQuestionnaireByUser(ctx, userID)
}

// ListInsights returns a user's latest insights
func (s *Service) ListInsights(ctx context.Context, userID string, unreadOnly bool) ([]models.Insight, error) {
	return s.store.ListInsightsByUser(ctx, userID, unreadOnly, insightPageSize)
}

// MarkInsightRead flips an insight's read flag; false when it does not exist
func (s *Service) MarkInsightRead(ctx context.Context, id string) (bool, error) {
	return s.store.MarkInsightRead(ctx, id)
}

// GetUser returns a user by ID, or ErrUserNotFound
func (s *Service) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
