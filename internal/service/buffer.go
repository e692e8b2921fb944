package service

import (
	"context"
	"time"

	"github.com/4rnv/safebalance/internal/recurrence"
)

// BufferUpdate reports the outcome of a buffer recalculation
type BufferUpdate struct {
	UserID    string  `json:"user_id"`
	NewBuffer float64 `json:"new_buffer"`
	Updated   bool    `json:"updated"`
}

// CalculateWeeklyBuffer sums the user's obligations due within the next
// 7 days, rounded to 2 decimal places
func (s *Service) CalculateWeeklyBuffer(ctx context.Context, userID string) (float64, error) {
	payments, err := s.store.FindPaymentsByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	today := s.now().UTC()
	var weeklyExpenses float64
	for _, payment := range payments {
		firstDate, err := time.Parse(recurrence.FirstDateLayout, payment.FirstDate)
		if err != nil {
			s.log.Warnf("Skipping scheduled payment %s with bad first date %q: %v",
				payment.ID, payment.FirstDate, err)
			continue
		}
		if recurrence.DueWithinWeek(payment.Occurrence, firstDate, today) {
			weeklyExpenses += payment.Amount
		}
	}
	return roundMoney(weeklyExpenses), nil
}

// UpdateBufferForUser recalculates the buffer and writes it to the user's
// account. Updated is false when the user has no account; the buffer value
// is still returned.
func (s *Service) UpdateBufferForUser(ctx context.Context, userID string) (BufferUpdate, error) {
	newBuffer, err := s.CalculateWeeklyBuffer(ctx, userID)
	if err != nil {
		return BufferUpdate{}, err
	}

	updated, err := s.store.SetBuffer(ctx, userID, newBuffer)
	if err != nil {
		return BufferUpdate{}, err
	}

	return BufferUpdate{UserID: userID, NewBuffer: newBuffer, Updated: updated}, nil
}
