package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	bookingRepo "fixmate/database/repository/booking"
	"fixmate/models"
)

// stubBookings implements the booking repository over a map, just enough
// state for the scan jobs to act on.
type stubBookings struct {
	mu   sync.Mutex
	byID map[string]*models.Booking
}

func newStubBookings(bookings ...*models.Booking) *stubBookings {
	s := &stubBookings{byID: make(map[string]*models.Booking)}
	for _, b := range bookings {
		cp := *b
		s.byID[b.ID] = &cp
	}
	return s
}

func (s *stubBookings) get(id string) *models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.byID[id]; ok {
		cp := *b
		return &cp
	}
	return nil
}

func (s *stubBookings) hasFlag(b *models.Booking, flag bookingRepo.ReminderFlag) bool {
	switch flag {
	case bookingRepo.FlagReminder30Min:
		return b.AcceptedReminder30Min
	case bookingRepo.FlagReminder1Hour:
		return b.AcceptedReminder1Hour
	default:
		return b.OverdueAutoCancel
	}
}

func (s *stubBookings) FindAcceptedWithoutFlag(_ context.Context, flag bookingRepo.ReminderFlag) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.byID {
		if b.Status == models.StatusAccepted && !s.hasFlag(b, flag) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *stubBookings) SetReminderFlag(_ context.Context, id string, flag bookingRepo.ReminderFlag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byID[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	switch flag {
	case bookingRepo.FlagReminder30Min:
		b.AcceptedReminder30Min = true
	case bookingRepo.FlagReminder1Hour:
		b.AcceptedReminder1Hour = true
	case bookingRepo.FlagOverdueCancel:
		b.OverdueAutoCancel = true
	}
	return nil
}

func (s *stubBookings) CancelOverdue(_ context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byID[id]
	if !ok || b.Status != models.StatusAccepted || b.OverdueAutoCancel {
		return nil, bookingRepo.ErrNotFound
	}
	b.Status = models.StatusCancelled
	b.IsActive = false
	b.OverdueAutoCancel = true
	cp := *b
	return &cp, nil
}

func (s *stubBookings) DeleteStaleRequested(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, b := range s.byID {
		if b.Status == models.StatusRequested && !b.CreatedAt.After(olderThan) {
			delete(s.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

// The scan jobs never touch the rest of the interface.

func (s *stubBookings) GetByID(context.Context, string) (*models.Booking, error) {
	return nil, bookingRepo.ErrNotFound
}
func (s *stubBookings) GetByCustomer(context.Context, string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) GetByWorker(context.Context, string, int64) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) FindWorkerConflict(context.Context, string, string, string, string) (*models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) FindCustomerConflict(context.Context, string, string, string, string, string) (*models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) CreateTransactionally(context.Context, *models.Booking) error { return nil }
func (s *stubBookings) GetActive(context.Context) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) UpdateStatus(context.Context, string, models.BookingStatus, models.BookingStatus, bool) (*models.Booking, error) {
	return nil, bookingRepo.ErrNotFound
}
func (s *stubBookings) MoveSchedule(context.Context, string, string, string) (*models.Booking, error) {
	return nil, bookingRepo.ErrNotFound
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []models.NotificationEvent
}

func (r *recordingDispatcher) Dispatch(_ context.Context, evt models.NotificationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recordingDispatcher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func accepted(id, date, timeStr string) *models.Booking {
	return &models.Booking{
		ID:       id,
		JobCode:  "123456",
		Customer: "cust-1",
		Worker:   "worker-1",
		Date:     date,
		Time:     timeStr,
		Status:   models.StatusAccepted,
		IsActive: true,
	}
}

func fixedNow() time.Time {
	return time.Date(2030, time.April, 8, 10, 0, 0, 0, time.Local)
}

func TestReminderScan_WindowAndFlag(t *testing.T) {
	inWindow := accepted("b-in", "2030-04-08", "10:30")
	tooSoon := accepted("b-soon", "2030-04-08", "10:29")
	tooLate := accepted("b-late", "2030-04-08", "10:31")
	repo := newStubBookings(inWindow, tooSoon, tooLate)
	dispatcher := &recordingDispatcher{}
	env := &Env{Bookings: repo, Notifier: dispatcher, Now: fixedNow}

	env.runReminderScan(context.Background(), bookingRepo.FlagReminder30Min, 30*time.Minute, "reminder_30min")

	if got := dispatcher.count(); got != 1 {
		t.Fatalf("notifications = %d, want 1", got)
	}
	evt := dispatcher.events[0]
	if evt.BookingID != "b-in" || evt.Kind != "reminder_30min" || evt.Target != "worker" {
		t.Errorf("unexpected event: %+v", evt)
	}
	if !repo.get("b-in").AcceptedReminder30Min {
		t.Error("reminded booking should carry the flag")
	}
	if repo.get("b-soon").AcceptedReminder30Min || repo.get("b-late").AcceptedReminder30Min {
		t.Error("bookings outside the window must not be flagged")
	}
}

func TestReminderScan_FlaggedBookingNotResent(t *testing.T) {
	b := accepted("b-1", "2030-04-08", "10:30")
	b.AcceptedReminder30Min = true
	repo := newStubBookings(b)
	dispatcher := &recordingDispatcher{}
	env := &Env{Bookings: repo, Notifier: dispatcher, Now: fixedNow}

	env.runReminderScan(context.Background(), bookingRepo.FlagReminder30Min, 30*time.Minute, "reminder_30min")

	if got := dispatcher.count(); got != 0 {
		t.Errorf("notifications = %d, want 0", got)
	}
}

func TestReminderScan_FlagsAreIndependent(t *testing.T) {
	b := accepted("b-1", "2030-04-08", "11:00")
	b.AcceptedReminder30Min = true // the 30-minute pass already ran
	repo := newStubBookings(b)
	dispatcher := &recordingDispatcher{}
	env := &Env{Bookings: repo, Notifier: dispatcher, Now: fixedNow}

	env.runReminderScan(context.Background(), bookingRepo.FlagReminder1Hour, time.Hour, "reminder_1hour")

	if got := dispatcher.count(); got != 1 {
		t.Fatalf("notifications = %d, want 1", got)
	}
	after := repo.get("b-1")
	if !after.AcceptedReminder1Hour {
		t.Error("1-hour flag should be set")
	}
}

func TestOverdueScan_CancelsPastThreshold(t *testing.T) {
	// Threshold defaults to 3 hours: 06:00 is 4h past, 08:00 only 2h.
	overdue := accepted("b-overdue", "2030-04-08", "06:00")
	recent := accepted("b-recent", "2030-04-08", "08:00")
	upcoming := accepted("b-upcoming", "2030-04-08", "15:00")
	repo := newStubBookings(overdue, recent, upcoming)
	dispatcher := &recordingDispatcher{}
	env := &Env{Bookings: repo, Notifier: dispatcher, Now: fixedNow}

	env.runOverdueScan(context.Background())

	after := repo.get("b-overdue")
	if after.Status != models.StatusCancelled || after.IsActive {
		t.Errorf("overdue booking = %s active=%v, want cancelled inactive", after.Status, after.IsActive)
	}
	if !after.OverdueAutoCancel {
		t.Error("cancelled booking should carry the overdue flag")
	}
	if repo.get("b-recent").Status != models.StatusAccepted {
		t.Error("booking inside the threshold must stay accepted")
	}
	if repo.get("b-upcoming").Status != models.StatusAccepted {
		t.Error("future booking must stay accepted")
	}
	if got := dispatcher.count(); got != 1 {
		t.Fatalf("notifications = %d, want 1", got)
	}
	if kind := dispatcher.events[0].Kind; kind != "booking_auto_cancelled" {
		t.Errorf("event kind = %q", kind)
	}
}

func TestOverdueScan_SecondPassIsNoOp(t *testing.T) {
	repo := newStubBookings(accepted("b-1", "2030-04-08", "06:00"))
	dispatcher := &recordingDispatcher{}
	env := &Env{Bookings: repo, Notifier: dispatcher, Now: fixedNow}

	env.runOverdueScan(context.Background())
	env.runOverdueScan(context.Background())

	if got := dispatcher.count(); got != 1 {
		t.Errorf("notifications = %d, want exactly 1 across passes", got)
	}
}

func TestStalePurge(t *testing.T) {
	now := fixedNow()
	stale := &models.Booking{
		ID: "b-stale", Status: models.StatusRequested,
		CreatedAt: now.Add(-25 * time.Hour),
	}
	fresh := &models.Booking{
		ID: "b-fresh", Status: models.StatusRequested,
		CreatedAt: now.Add(-2 * time.Hour),
	}
	acceptedOld := accepted("b-accepted", "2030-04-01", "10:00")
	acceptedOld.CreatedAt = now.Add(-48 * time.Hour)
	repo := newStubBookings(stale, fresh, acceptedOld)
	env := &Env{Bookings: repo, Now: fixedNow}

	env.runStalePurge(context.Background(), 24*time.Hour)

	if repo.get("b-stale") != nil {
		t.Error("stale requested booking should be deleted")
	}
	if repo.get("b-fresh") == nil {
		t.Error("fresh requested booking must survive")
	}
	if repo.get("b-accepted") == nil {
		t.Error("purge must only touch requested bookings")
	}
}

func TestRunGuard_SkipsOverlap(t *testing.T) {
	g := &runGuard{}
	if !g.tryAcquire() {
		t.Fatal("first acquire should succeed")
	}
	if g.tryAcquire() {
		t.Fatal("second acquire while held should fail")
	}
	g.release()
	if !g.tryAcquire() {
		t.Fatal("acquire after release should succeed")
	}
}

func TestRunGuard_SingleWinnerUnderContention(t *testing.T) {
	g := &runGuard{}
	var mu sync.Mutex
	count := 0
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.tryAcquire() {
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if count != 1 {
		t.Errorf("acquired = %d, want 1", count)
	}
}
