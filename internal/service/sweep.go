package service

import "context"

// UpdateAllBuffers is the daily full-population sweep: refresh every user's
// buffer, then run the balance-risk and upcoming-payment checks. Per-user
// failures are logged and the sweep continues.
func (s *Service) UpdateAllBuffers(ctx context.Context) error {
	userIDs, err := s.store.ListUserIDs(ctx)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		if _, err := s.UpdateBufferForUser(ctx, userID); err != nil {
			s.log.Errorf("Buffer update failed for user %s: %v", userID, err)
			continue
		}
		if err := s.CheckBalanceRisk(ctx, userID); err != nil {
			s.log.Errorf("Balance-risk check failed for user %s: %v", userID, err)
		}
		if err := s.CheckUpcomingPayments(ctx, userID); err != nil {
			s.log.Errorf("Upcoming-payment check failed for user %s: %v", userID, err)
		}
	}

	s.log.Infof("Buffer sweep finished for %d users", len(userIDs))
	return nil
}

// RemindAllUpcomingPayments is the 6-hourly reminder sweep
func (s *Service) RemindAllUpcomingPayments(ctx context.Context) error {
	userIDs, err := s.store.ListUserIDs(ctx)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		if err := s.CheckUpcomingPayments(ctx, userID); err != nil {
			s.log.Errorf("Upcoming-payment check failed for user %s: %v", userID, err)
		}
	}

	s.log.Infof("Payment-reminder sweep finished for %d users", len(userIDs))
	return nil
}
