package chat

import (
	"context"

	"fixmate/utils"

	"go.uber.org/zap"
)

// Service tears down booking-scoped chat channels when a booking reaches a
// terminal state. The transport itself lives outside this system; the core
// only triggers teardown and logs failures.
type Service interface {
	TeardownForBooking(ctx context.Context, bookingID string) error
}

// LogService is the default implementation: it records the teardown intent.
type LogService struct{}

func (LogService) TeardownForBooking(_ context.Context, bookingID string) error {
	utils.GetLogger().Info("chat teardown requested", zap.String("bookingId", bookingID))
	return nil
}
