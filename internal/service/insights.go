package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/4rnv/safebalance/internal/models"
	"github.com/4rnv/safebalance/internal/recurrence"
)

// Dedup windows: a second insight of the same type for the same user is
// suppressed inside these intervals.
const (
	riskDedupWindow     = 24 * time.Hour
	bufferDedupWindow   = 24 * time.Hour
	reminderDedupWindow = 48 * time.Hour
)

// emitRiskInsight persists an income-volatility advisory for a risk
// prediction at or above the insight threshold
func (s *Service) emitRiskInsight(ctx context.Context, risk *models.RiskResult) error {
	shortage := risk.WeeklyExpenses - risk.CurrentBalance - risk.PredictedIncomeRange.Pessimistic
	probPercent := int(risk.RiskProbability * 100)

	var priority models.InsightPriority
	var title, message, action string
	switch risk.RiskLevel {
	case models.RiskCritical:
		priority = models.PriorityCritical
		title = "🚨 Critical: High Risk of Payment Shortfall"
		message = fmt.Sprintf(
			"There is a %d%% chance you won't be able to cover next week's expenses (₹%.2f). "+
				"Your current balance is ₹%.2f and predicted income may be insufficient.",
			probPercent, risk.WeeklyExpenses, risk.CurrentBalance)
		action = fmt.Sprintf(
			"URGENT: Avoid all non-essential spending this week. "+
				"Try to earn an additional ₹%.2f or postpone ₹%.2f in expenses.",
			abs(shortage), abs(shortage))
	case models.RiskHigh:
		priority = models.PriorityHigh
		title = "⚠️ Warning: Moderate Risk of Payment Issues"
		message = fmt.Sprintf(
			"There is a %d%% chance of facing payment difficulties next week. "+
				"Your expenses (₹%.2f) may exceed available funds.",
			probPercent, risk.WeeklyExpenses)
		action = "Recommended: Limit discretionary spending to essentials only. " +
			"Consider picking up extra work if possible."
	default: // medium
		priority = models.PriorityMedium
		title = "💡 Advisory: Monitor Your Spending"
		message = fmt.Sprintf(
			"There is a %d%% chance of a tight budget next week. "+
				"Your predicted income may be lower than usual.",
			probPercent)
		action = "Be mindful of unnecessary expenses. Save where you can to maintain your buffer."
	}

	insight := &models.Insight{
		UserID:           risk.UserID,
		Type:             models.InsightIncomeVolatilityAlert,
		Priority:         priority,
		Title:            title,
		Message:          message,
		ActionSuggestion: action,
		CreatedAt:        s.now().UTC(),
		Metadata: map[string]interface{}{
			"risk_probability":        risk.RiskProbability,
			"risk_level":              string(risk.RiskLevel),
			"predicted_income_median": risk.PredictedIncomeRange.Median,
			"weekly_expenses":         risk.WeeklyExpenses,
		},
	}

	cutoff := s.now().UTC().Add(-riskDedupWindow)
	inserted, err := s.store.InsertInsightUnlessRecent(ctx, insight, cutoff)
	if err != nil {
		return err
	}
	if inserted {
		s.logInsightEmitted(insight)
	}
	return nil
}

// CheckBalanceRisk compares the balance against the buffer and emits a
// buffer-breach advisory when the balance runs low. A missing account is a
// no-op.
func (s *Service) CheckBalanceRisk(ctx context.Context, userID string) error {
	account, err := s.store.FindAccountByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if account == nil {
		return nil
	}

	balance, buffer := account.Balance, account.Buffer

	var priority models.InsightPriority
	var title, message, action string
	switch {
	case balance < buffer*0.5:
		priority = models.PriorityCritical
		title = "🚨 Critical: Balance Very Low"
		message = fmt.Sprintf(
			"Your balance (₹%.2f) is critically low. You need ₹%.2f for next week's expenses.",
			balance, buffer)
		action = fmt.Sprintf(
			"Add ₹%.2f to your account immediately or postpone non-essential payments.",
			buffer-balance)
	case balance < buffer:
		priority = models.PriorityHigh
		title = "⚠️ Warning: Balance Below Buffer"
		message = fmt.Sprintf(
			"Your balance (₹%.2f) is below your weekly buffer (₹%.2f).", balance, buffer)
		action = fmt.Sprintf(
			"Consider moving ₹%.2f to your account to cover upcoming expenses.", buffer-balance)
	case balance < buffer*1.5:
		priority = models.PriorityMedium
		title = "💡 Advisory: Monitor Your Balance"
		message = fmt.Sprintf(
			"Your balance (₹%.2f) is close to your buffer threshold (₹%.2f).", balance, buffer)
		action = "Be mindful of spending this week to maintain a healthy buffer."
	default:
		// Balance is healthy, no insight needed.
		return nil
	}

	insight := &models.Insight{
		UserID:           userID,
		Type:             models.InsightBufferBreach,
		Priority:         priority,
		Title:            title,
		Message:          message,
		ActionSuggestion: action,
		CreatedAt:        s.now().UTC(),
	}

	cutoff := s.now().UTC().Add(-bufferDedupWindow)
	inserted, err := s.store.InsertInsightUnlessRecent(ctx, insight, cutoff)
	if err != nil {
		return err
	}
	if inserted {
		s.logInsightEmitted(insight)
	}
	return nil
}

// CheckUpcomingPayments emits reminders for high-importance payments due in
// 1 to 3 days, at most one per payment per 48 hours
func (s *Service) CheckUpcomingPayments(ctx context.Context, userID string) error {
	payments, err := s.store.FindHighImportancePayments(ctx, userID)
	if err != nil {
		return err
	}

	today := s.now().UTC()
	for _, payment := range payments {
		firstDate, err := time.Parse(recurrence.FirstDateLayout, payment.FirstDate)
		if err != nil {
			s.log.Warnf("Skipping scheduled payment %s with bad first date %q: %v",
				payment.ID, payment.FirstDate, err)
			continue
		}
		daysUntil, ok := recurrence.DaysUntil(payment.Occurrence, firstDate, today)
		if !ok || daysUntil < 1 || daysUntil > 3 {
			continue
		}

		insight := &models.Insight{
			UserID:   userID,
			Type:     models.InsightPaymentDueSoon,
			Priority: models.PriorityHigh,
			Title:    fmt.Sprintf("Payment Due: %s", payment.Particulars),
			Message: fmt.Sprintf("Your %s payment of ₹%.2f is due in %d day(s).",
				payment.Particulars, payment.Amount, daysUntil),
			ActionSuggestion: fmt.Sprintf("Ensure ₹%.2f is available in your account.", payment.Amount),
			CreatedAt:        today,
			Metadata:         map[string]interface{}{"particulars": payment.Particulars},
		}

		cutoff := today.Add(-reminderDedupWindow)
		inserted, err := s.store.InsertReminderUnlessRecent(ctx, insight, cutoff, payment.Particulars)
		if err != nil {
			s.log.Errorf("Failed to insert payment reminder for user %s: %v", userID, err)
			continue
		}
		if !inserted {
			continue
		}
		s.logInsightEmitted(insight)
		s.sendReminderEmail(ctx, userID, payment, daysUntil)
	}
	return nil
}

// sendReminderEmail mails the reminder when SMTP is configured and the user
// has an email on file. Failures are logged, never propagated.
func (s *Service) sendReminderEmail(ctx context.Context, userID string, payment models.ScheduledPayment, daysUntil int) {
	if s.mailer == nil {
		return
	}
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		s.log.Errorf("Failed to look up user %s for reminder email: %v", userID, err)
		return
	}
	if user == nil || user.Email == "" {
		return
	}
	if err := s.mailer.SendPaymentReminder(user.Email, user.Name, payment.Particulars, payment.Amount, daysUntil); err != nil {
		s.log.Errorf("Failed to send reminder email to user %s: %v", userID, err)
	}
}

func (s *Service) logInsightEmitted(insight *models.Insight) {
	s.log.WithFields(logrus.Fields{
		"event":    "insight_emitted",
		"user_id":  insight.UserID,
		"type":     insight.Type,
		"priority": insight.Priority,
	}).Info("Insight emitted")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
