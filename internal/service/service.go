package service

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/4rnv/safebalance/internal/config"
	"github.com/4rnv/safebalance/internal/models"
)

// AccountStore is the virtual-account collaborator contract
type AccountStore interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	FindAccountByUserID(ctx context.Context, userID string) (*models.Account, error)
	FindAccountByID(ctx context.Context, id string) (*models.Account, error)
	IncrementBalance(ctx context.Context, acctID string, delta float64) (bool, error)
	SetBuffer(ctx context.Context, userID string, buffer float64) (bool, error)
}

// PaymentStore is the scheduled-payment collaborator contract
type PaymentStore interface {
	CreateScheduledPayment(ctx context.Context, payment *models.ScheduledPayment) error
	FindPaymentsByUser(ctx context.Context, userID string) ([]models.ScheduledPayment, error)
	FindHighImportancePayments(ctx context.Context, userID string) ([]models.ScheduledPayment, error)
	DeleteScheduledPayment(ctx context.Context, id string) (bool, error)
}

// TransactionStore is the transaction collaborator contract
type TransactionStore interface {
	InsertTransaction(ctx context.Context, tx *models.Transaction) error
	FindDeposits(ctx context.Context, acctID string, since time.Time) ([]models.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, acctID string, skip, limit uint64) ([]models.Transaction, error)
}

// InsightStore is the insight collaborator contract. The conditional inserts
// must be atomic: check and insert in one step, so two concurrent trigger
// paths cannot both pass the same dedup window.
type InsightStore interface {
	InsertInsightUnlessRecent(ctx context.Context, insight *models.Insight, cutoff time.Time) (bool, error)
	InsertReminderUnlessRecent(ctx context.Context, insight *models.Insight, cutoff time.Time, particulars string) (bool, error)
	ListInsightsByUser(ctx context.Context, userID string, unreadOnly bool, limit uint64) ([]models.Insight, error)
	MarkInsightRead(ctx context.Context, id string) (bool, error)
}

// QuestionnaireStore is the questionnaire collaborator contract
type QuestionnaireStore interface {
	CreateQuestionnaire(ctx context.Context, q *models.Questionnaire) error
	FindQuestionnaireByUser(ctx context.Context, userID string) (*models.Questionnaire, error)
}

// UserStore is the user collaborator contract
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByPhone(ctx context.Context, phone string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

// Store aggregates every collaborator the service consumes; the Postgres
// repository satisfies it in production
type Store interface {
	AccountStore
	PaymentStore
	TransactionStore
	InsightStore
	QuestionnaireStore
	UserStore
}

// IncomeForecaster predicts next-week income for a user
type IncomeForecaster interface {
	PredictWeeklyIncome(ctx context.Context, userID string, txs []models.Transaction) models.ForecastResult
}

// Mailer sends payment-due reminder emails
type Mailer interface {
	SendPaymentReminder(to, name, particulars string, amount float64, daysUntil int) error
}

// Service handles business logic
type Service struct {
	store      Store
	forecaster IncomeForecaster
	mailer     Mailer // optional
	log        *logrus.Logger
	config     *config.Config
	now        func() time.Time
}

// NewService initializes a new service. mailer may be nil when SMTP is not
// configured.
func NewService(store Store, forecaster IncomeForecaster, mailer Mailer, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		store:      store,
		forecaster: forecaster,
		mailer:     mailer,
		log:        log,
		config:     cfg,
		now:        time.Now,
	}
}

func roundMoney(x float64) float64 {
	return math.Round(x*100) / 100
}
