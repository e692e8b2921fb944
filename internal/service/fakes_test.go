package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/4rnv/safebalance/internal/config"
	"github.com/4rnv/safebalance/internal/models"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// fakeStore is an in-memory Store. Its conditional inserts mirror the
// atomic-dedup contract of the Postgres repository.
type fakeStore struct {
	users    map[string]*models.User
	accounts map[string]*models.Account // keyed by user ID
	payments []models.ScheduledPayment
	deposits []models.Transaction
	insights []models.Insight
	txs      []models.Transaction

	questionnaires []models.Questionnaire
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*models.User{},
		accounts: map[string]*models.Account{},
	}
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(f.users)+1)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) FindUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeStore) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for id := range f.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = "acct-" + account.UserID
	}
	f.accounts[account.UserID] = account
	return nil
}

func (f *fakeStore) FindAccountByUserID(ctx context.Context, userID string) (*models.Account, error) {
	return f.accounts[userID], nil
}

func (f *fakeStore) FindAccountByID(ctx context.Context, id string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) IncrementBalance(ctx context.Context, acctID string, delta float64) (bool, error) {
	for _, a := range f.accounts {
		if a.ID == acctID {
			a.Balance += delta
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) SetBuffer(ctx context.Context, userID string, buffer float64) (bool, error) {
	account, ok := f.accounts[userID]
	if !ok {
		return false, nil
	}
	account.Buffer = buffer
	return true, nil
}

func (f *fakeStore) CreateScheduledPayment(ctx context.Context, payment *models.ScheduledPayment) error {
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakeStore) FindPaymentsByUser(ctx context.Context, userID string) ([]models.ScheduledPayment, error) {
	var out []models.ScheduledPayment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindHighImportancePayments(ctx context.Context, userID string) ([]models.ScheduledPayment, error) {
	var out []models.ScheduledPayment
	for _, p := range f.payments {
		if p.UserID == userID && p.Importance == models.ImportanceHigh {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteScheduledPayment(ctx context.Context, id string) (bool, error) {
	for i, p := range f.payments {
		if p.ID == id {
			f.payments = append(f.payments[:i], f.payments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	f.txs = append(f.txs, *tx)
	return nil
}

func (f *fakeStore) FindDeposits(ctx context.Context, acctID string, since time.Time) ([]models.Transaction, error) {
	return f.deposits, nil
}

func (f *fakeStore) ListTransactionsByAccount(ctx context.Context, acctID string, skip, limit uint64) ([]models.Transaction, error) {
	return f.txs, nil
}

func (f *fakeStore) InsertInsightUnlessRecent(ctx context.Context, insight *models.Insight, cutoff time.Time) (bool, error) {
	for _, existing := range f.insights {
		if existing.UserID == insight.UserID && existing.Type == insight.Type &&
			!existing.CreatedAt.Before(cutoff) {
			return false, nil
		}
	}
	f.insights = append(f.insights, *insight)
	return true, nil
}

func (f *fakeStore) InsertReminderUnlessRecent(ctx context.Context, insight *models.Insight, cutoff time.Time, particulars string) (bool, error) {
	for _, existing := range f.insights {
		if existing.UserID == insight.UserID && existing.Type == insight.Type &&
			!existing.CreatedAt.Before(cutoff) &&
			existing.Metadata != nil && existing.Metadata["particulars"] == particulars {
			return false, nil
		}
	}
	f.insights = append(f.insights, *insight)
	return true, nil
}

func (f *fakeStore) ListInsightsByUser(ctx context.Context, userID string, unreadOnly bool, limit uint64) ([]models.Insight, error) {
	var out []models.Insight
	for _, ins := range f.insights {
		if ins.UserID == userID && (!unreadOnly || !ins.Read) {
			out = append(out, ins)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkInsightRead(ctx context.Context, id string) (bool, error) {
	for i := range f.insights {
		if f.insights[i].ID == id {
			f.insights[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateQuestionnaire(ctx context.Context, q *models.Questionnaire) error {
	f.questionnaires = append(f.questionnaires, *q)
	return nil
}

func (f *fakeStore) FindQuestionnaireByUser(ctx context.Context, userID string) (*models.Questionnaire, error) {
	for i := range f.questionnaires {
		if f.questionnaires[i].UserID == userID {
			return &f.questionnaires[i], nil
		}
	}
	return nil, nil
}

// insightsOfType counts persisted insights for assertions
func (f *fakeStore) insightsOfType(userID string, t models.InsightType) []models.Insight {
	var out []models.Insight
	for _, ins := range f.insights {
		if ins.UserID == userID && ins.Type == t {
			out = append(out, ins)
		}
	}
	return out
}

type fakeForecaster struct {
	result models.ForecastResult
}

func (f *fakeForecaster) PredictWeeklyIncome(ctx context.Context, userID string, txs []models.Transaction) models.ForecastResult {
	return f.result
}

func newTestService(store *fakeStore, forecaster IncomeForecaster) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := NewService(store, forecaster, nil, &config.Config{JWTSecret: "test"}, log)
	svc.now = func() time.Time { return testNow }
	return svc
}
