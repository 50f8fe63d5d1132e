package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "fixmate/database/repository/booking"
	serviceRepo "fixmate/database/repository/service"
	userRepo "fixmate/database/repository/user"
	workerRepo "fixmate/database/repository/worker"
	"fixmate/models"
)

// memBookingRepo is an in-memory BookingRepository. Its transactional create
// runs under one lock and emulates the partial unique index over active
// (worker, date, time), so the concurrency tests exercise the same
// exactly-one-winner behavior as the real store.
type memBookingRepo struct {
	mu            sync.Mutex
	byID          map[string]*models.Booking
	failTransient bool
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{byID: make(map[string]*models.Booking)}
}

func (m *memBookingRepo) isActive(b *models.Booking) bool {
	return b.Status == models.StatusRequested || b.Status == models.StatusAccepted
}

func (m *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBookingRepo) GetByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.byID {
		if b.Customer == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookingRepo) GetByWorker(_ context.Context, workerID string, limit int64) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.byID {
		if b.Worker == workerID {
			out = append(out, *b)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memBookingRepo) GetActive(_ context.Context) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.byID {
		if b.IsActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookingRepo) findWorkerConflictLocked(workerID, date, timeStr, excludeID string) *models.Booking {
	for _, b := range m.byID {
		if b.Worker == workerID && b.Date == date && b.Time == timeStr &&
			m.isActive(b) && b.ID != excludeID {
			return b
		}
	}
	return nil
}

func (m *memBookingRepo) FindWorkerConflict(_ context.Context, workerID, date, timeStr, excludeID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b := m.findWorkerConflictLocked(workerID, date, timeStr, excludeID); b != nil {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *memBookingRepo) FindCustomerConflict(_ context.Context, customerID, workerID, serviceID, date, timeStr string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.byID {
		if b.Customer == customerID && b.Worker == workerID &&
			b.ServiceDetails.Service == serviceID &&
			b.Date == date && b.Time == timeStr && m.isActive(b) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memBookingRepo) CreateTransactionally(_ context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTransient {
		return bookingRepo.ErrTransient
	}
	for _, b := range m.byID {
		if b.Customer == booking.Customer && b.Worker == booking.Worker &&
			b.ServiceDetails.Service == booking.ServiceDetails.Service &&
			b.Date == booking.Date && b.Time == booking.Time && m.isActive(b) {
			return bookingRepo.ErrCustomerConflict
		}
	}
	if m.findWorkerConflictLocked(booking.Worker, booking.Date, booking.Time, "") != nil {
		return bookingRepo.ErrWorkerConflict
	}
	cp := *booking
	m.byID[booking.ID] = &cp
	return nil
}

func (m *memBookingRepo) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus, isActive bool) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok || b.Status != from {
		return nil, bookingRepo.ErrNotFound
	}
	b.Status = to
	b.IsActive = isActive
	b.UpdatedAt = time.Now()
	cp := *b
	return &cp, nil
}

func (m *memBookingRepo) MoveSchedule(_ context.Context, id, newDate, newTime string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok || !m.isActive(b) {
		return nil, bookingRepo.ErrNoActiveBooking
	}
	if m.findWorkerConflictLocked(b.Worker, newDate, newTime, id) != nil {
		return nil, bookingRepo.ErrWorkerConflict
	}
	b.Date = newDate
	b.Time = newTime
	b.UpdatedAt = time.Now()
	cp := *b
	return &cp, nil
}

func (m *memBookingRepo) FindAcceptedWithoutFlag(_ context.Context, flag bookingRepo.ReminderFlag) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.byID {
		if b.Status != models.StatusAccepted {
			continue
		}
		switch flag {
		case bookingRepo.FlagReminder30Min:
			if b.AcceptedReminder30Min {
				continue
			}
		case bookingRepo.FlagReminder1Hour:
			if b.AcceptedReminder1Hour {
				continue
			}
		case bookingRepo.FlagOverdueCancel:
			if b.OverdueAutoCancel {
				continue
			}
		}
		out = append(out, *b)
	}
	return out, nil
}

func (m *memBookingRepo) SetReminderFlag(_ context.Context, id string, flag bookingRepo.ReminderFlag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
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

func (m *memBookingRepo) CancelOverdue(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok || b.Status != models.StatusAccepted || b.OverdueAutoCancel {
		return nil, bookingRepo.ErrNotFound
	}
	b.Status = models.StatusCancelled
	b.IsActive = false
	b.OverdueAutoCancel = true
	b.UpdatedAt = time.Now()
	cp := *b
	return &cp, nil
}

func (m *memBookingRepo) DeleteStaleRequested(_ context.Context, olderThan time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, b := range m.byID {
		if b.Status == models.StatusRequested && !b.CreatedAt.After(olderThan) {
			delete(m.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

// Directory fakes.

type fakeUsers map[string]*models.User

func (f fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrNotFound
}

type fakeWorkers map[string]*models.WorkerProfile

func (f fakeWorkers) GetByID(_ context.Context, id string) (*models.WorkerProfile, error) {
	if w, ok := f[id]; ok {
		return w, nil
	}
	return nil, workerRepo.ErrNotFound
}

func (f fakeWorkers) GetByUser(_ context.Context, userID string) (*models.WorkerProfile, error) {
	for _, w := range f {
		if w.User == userID {
			return w, nil
		}
	}
	return nil, workerRepo.ErrNotFound
}

type fakeServices map[string]*models.ServiceCategory

func (f fakeServices) GetByID(_ context.Context, id string) (*models.ServiceCategory, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, serviceRepo.ErrNotFound
}

// Collaborator fakes.

type fakeChat struct {
	mu        sync.Mutex
	teardowns []string
}

func (f *fakeChat) TeardownForBooking(_ context.Context, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teardowns = append(f.teardowns, bookingID)
	return nil
}

type fakeDispatcher struct {
	mu     sync.Mutex
	events []models.NotificationEvent
}

func (f *fakeDispatcher) Dispatch(_ context.Context, evt models.NotificationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeDispatcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}
