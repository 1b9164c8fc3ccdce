package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	clientserrors "lumiere/internal/clients/errors"
	"lumiere/internal/clients/validator"
	"lumiere/pkg/config"
	mongotx "lumiere/pkg/db/mongo"
	apperrors "lumiere/pkg/errors"
	"lumiere/pkg/kafka"
	"lumiere/pkg/logger"
	"lumiere/pkg/model"
)

// ────────────────────────────────────────────────
// Mocks
// ────────────────────────────────────────────────

type mockClientRepository struct {
	findAllSnapshotFunc     func(ctx context.Context) ([]*model.Client, error)
	pushReservationFunc     func(ctx context.Context, id string, reservation *model.Reservation) error
	pullReservationFunc     func(ctx context.Context, id string, reservationID string) error
	replaceReservationsFunc func(ctx context.Context, id string, reservations []model.Reservation) error
	snapshotCalls           int
}

func (m *mockClientRepository) Create(ctx context.Context, client *model.Client) error {
	return nil
}

func (m *mockClientRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	return nil, clientserrors.ErrNotFound
}

func (m *mockClientRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Client, error) {
	return []*model.Client{}, nil
}

func (m *mockClientRepository) FindAllSnapshot(ctx context.Context) ([]*model.Client, error) {
	m.snapshotCalls++
	if m.findAllSnapshotFunc != nil {
		return m.findAllSnapshotFunc(ctx)
	}
	return []*model.Client{}, nil
}

func (m *mockClientRepository) Update(ctx context.Context, id string, client *model.Client) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockClientRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockClientRepository) PushReservation(ctx context.Context, id string, reservation *model.Reservation) error {
	if m.pushReservationFunc != nil {
		return m.pushReservationFunc(ctx, id, reservation)
	}
	return nil
}

func (m *mockClientRepository) PullReservation(ctx context.Context, id string, reservationID string) error {
	if m.pullReservationFunc != nil {
		return m.pullReservationFunc(ctx, id, reservationID)
	}
	return nil
}

func (m *mockClientRepository) ReplaceReservations(ctx context.Context, id string, reservations []model.Reservation) error {
	if m.replaceReservationsFunc != nil {
		return m.replaceReservationsFunc(ctx, id, reservations)
	}
	return nil
}

func (m *mockClientRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockClientRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockDayLockRepository struct {
	createFunc func(ctx context.Context, lock *model.DayLock) (*model.DayLock, error)
	created    []string
	released   []string
}

func (m *mockDayLockRepository) Create(ctx context.Context, lock *model.DayLock) (*model.DayLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	m.created = append(m.created, lock.ID)
	return lock, nil
}

func (m *mockDayLockRepository) Delete(ctx context.Context, lockID string) error {
	m.released = append(m.released, lockID)
	return nil
}

func (m *mockDayLockRepository) DeleteMany(ctx context.Context, lockIDs []string) error {
	m.released = append(m.released, lockIDs...)
	return nil
}

type mockPublisher struct {
	messages []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatText,
		Service: "test",
	})
	return &config.Config{
		Log:          log,
		DailyQuota:   3,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockClientRepository, locks *mockDayLockRepository, cfg *config.Config, events EventPublisher) ReservationService {
	return NewReservationService(repo, locks, validator.NewClientValidator(cfg.Log), cfg, events)
}

const clientID = "c0a80121-0000-4000-8000-000000000001"

// occupants returns n clients each holding a stay over the range.
func occupants(n int, start, end string) []*model.Client {
	ids := []string{
		"a1111111-1111-4111-8111-111111111111",
		"a2222222-2222-4222-8222-222222222222",
		"a3333333-3333-4333-8333-333333333333",
		"a4444444-4444-4444-8444-444444444444",
	}
	var clients []*model.Client
	for i := 0; i < n; i++ {
		clients = append(clients, &model.Client{
			ID: ids[i],
			Reservations: []model.Reservation{
				{ID: "res-" + ids[i], Start: start, End: end, Status: model.StatusConfirmed},
			},
		})
	}
	return clients
}

// ────────────────────────────────────────────────
// Tests for Admit()
// ────────────────────────────────────────────────

func TestAdmit_Success(t *testing.T) {
	cfg := testConfig()
	var pushed *model.Reservation
	repo := &mockClientRepository{
		pushReservationFunc: func(ctx context.Context, id string, reservation *model.Reservation) error {
			pushed = reservation
			return nil
		},
	}
	locks := &mockDayLockRepository{}
	events := &mockPublisher{}
	svc := newTestService(repo, locks, cfg, events)

	reservation := &model.Reservation{Start: "2025-07-01", End: "2025-07-03"}
	if err := svc.Admit(context.Background(), clientID, reservation); err != nil {
		t.Fatalf("Admit failed: %v", err)
	}

	if pushed == nil {
		t.Fatal("expected reservation to be stored")
	}
	if pushed.ID == "" {
		t.Error("expected a generated reservation ID")
	}
	if pushed.Status != model.StatusPending {
		t.Errorf("expected default status pending, got %q", pushed.Status)
	}
	if len(locks.created) != 3 {
		t.Errorf("expected 3 day locks for a 3-day stay, got %d", len(locks.created))
	}
	if len(locks.released) != 3 {
		t.Errorf("expected all day locks released, got %d", len(locks.released))
	}
	if len(events.messages) != 1 {
		t.Errorf("expected 1 published event, got %d", len(events.messages))
	}
}

func TestAdmit_QuotaExceeded(t *testing.T) {
	cfg := testConfig()
	pushed := false
	repo := &mockClientRepository{
		findAllSnapshotFunc: func(ctx context.Context) ([]*model.Client, error) {
			return occupants(3, "2025-07-01", "2025-07-05"), nil
		},
		pushReservationFunc: func(ctx context.Context, id string, reservation *model.Reservation) error {
			pushed = true
			return nil
		},
	}
	locks := &mockDayLockRepository{}
	svc := newTestService(repo, locks, cfg, nil)

	reservation := &model.Reservation{Start: "2025-07-03", End: "2025-07-04"}
	err := svc.Admit(context.Background(), clientID, reservation)
	if err == nil {
		t.Fatal("expected quota refusal on a full day")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeQuotaExceeded {
		t.Errorf("expected quota exceeded error, got %v", err)
	}
	if pushed {
		t.Error("reservation must not be stored when quota is exceeded")
	}
	if len(locks.released) != len(locks.created) {
		t.Errorf("expected all %d locks released, got %d", len(locks.created), len(locks.released))
	}
}

func TestAdmit_ReportsEarliestFullDay(t *testing.T) {
	cfg := testConfig()
	// Only 2025-07-04 is full; the stay starts earlier.
	repo := &mockClientRepository{
		findAllSnapshotFunc: func(ctx context.Context) ([]*model.Client, error) {
			return occupants(3, "2025-07-04", "2025-07-04"), nil
		},
	}
	svc := newTestService(repo, &mockDayLockRepository{}, cfg, nil)

	err := svc.Admit(context.Background(), clientID, &model.Reservation{Start: "2025-07-02", End: "2025-07-06"})
	if err == nil {
		t.Fatal("expected quota refusal")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	if details, ok := appErr.Details["day"]; !ok || details != "2025-07-04" {
		t.Errorf("expected refusal to name 2025-07-04, got %v", appErr.Details)
	}
}

func TestAdmit_OwnStaysDoNotCount(t *testing.T) {
	cfg := testConfig()
	// The candidate's own client already holds 3 stays on the day. Self
	// occupancy is excluded, so admission still passes.
	repo := &mockClientRepository{
		findAllSnapshotFunc: func(ctx context.Context) ([]*model.Client, error) {
			return []*model.Client{
				{
					ID: clientID,
					Reservations: []model.Reservation{
						{ID: "r1", Start: "2025-07-01", End: "2025-07-05", Status: model.StatusConfirmed},
						{ID: "r2", Start: "2025-07-01", End: "2025-07-05", Status: model.StatusPending},
						{ID: "r3", Start: "2025-07-01", End: "2025-07-05", Status: model.StatusCancelled},
					},
				},
			}, nil
		},
	}
	svc := newTestService(repo, &mockDayLockRepository{}, cfg, nil)

	err := svc.Admit(context.Background(), clientID, &model.Reservation{Start: "2025-07-02", End: "2025-07-03"})
	if err != nil {
		t.Fatalf("expected own stays to be excluded from occupancy, got %v", err)
	}
}

func TestAdmit_InvalidRange(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockClientRepository{}, &mockDayLockRepository{}, cfg, nil)

	err := svc.Admit(context.Background(), clientID, &model.Reservation{Start: "2025-07-05", End: "2025-07-01"})
	if err == nil {
		t.Fatal("expected validation error for inverted range")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAdmit_LockConflict(t *testing.T) {
	cfg := testConfig()
	locks := &mockDayLockRepository{
		createFunc: func(ctx context.Context, lock *model.DayLock) (*model.DayLock, error) {
			return nil, mongo.WriteException{
				WriteErrors: []mongo.WriteError{{Code: 11000}},
			}
		},
	}
	svc := newTestService(&mockClientRepository{}, locks, cfg, nil)

	err := svc.Admit(context.Background(), clientID, &model.Reservation{Start: "2025-07-01", End: "2025-07-01"})
	if err == nil {
		t.Fatal("expected conflict when the day lock is held")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

// ────────────────────────────────────────────────
// Tests for Remove()
// ────────────────────────────────────────────────

func TestRemove_NeverConsultsQuota(t *testing.T) {
	cfg := testConfig()
	repo := &mockClientRepository{
		findAllSnapshotFunc: func(ctx context.Context) ([]*model.Client, error) {
			t.Fatal("removal must not load the snapshot")
			return nil, nil
		},
	}
	events := &mockPublisher{}
	svc := newTestService(repo, &mockDayLockRepository{}, cfg, events)

	if err := svc.Remove(context.Background(), clientID, "res-1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if repo.snapshotCalls != 0 {
		t.Errorf("expected 0 snapshot loads during removal, got %d", repo.snapshotCalls)
	}
	if len(events.messages) != 1 {
		t.Errorf("expected 1 published event, got %d", len(events.messages))
	}
}

func TestRemove_ReservationNotFound(t *testing.T) {
	cfg := testConfig()
	repo := &mockClientRepository{
		pullReservationFunc: func(ctx context.Context, id string, reservationID string) error {
			return clientserrors.ErrReservationNotFound
		},
	}
	svc := newTestService(repo, &mockDayLockRepository{}, cfg, nil)

	err := svc.Remove(context.Background(), clientID, "missing-res")
	if err == nil {
		t.Fatal("expected error for missing reservation")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

// ────────────────────────────────────────────────
// Tests for Replace()
// ────────────────────────────────────────────────

func TestReplace_BypassesQuotaByDefault(t *testing.T) {
	cfg := testConfig()
	var replaced []model.Reservation
	repo := &mockClientRepository{
		findAllSnapshotFunc: func(ctx context.Context) ([]*model.Client, error) {
			return occupants(3, "2025-07-01", "2025-07-05"), nil
		},
		replaceReservationsFunc: func(ctx context.Context, id string, reservations []model.Reservation) error {
			replaced = reservations
			return nil
		},
	}
	svc := newTestService(repo, &mockDayLockRepository{}, cfg, nil)

	reservations := []model.Reservation{
		{Start: "2025-07-02", End: "2025-07-03"},
	}
	if err := svc.Replace(context.Background(), clientID, reservations); err != nil {
		t.Fatalf("expected wholesale replace to bypass admission, got %v", err)
	}
	if len(replaced) != 1 {
		t.Fatalf("expected 1 stored reservation, got %d", len(replaced))
	}
	if replaced[0].ID == "" {
		t.Error("expected a generated reservation ID")
	}
	if replaced[0].Status != model.StatusPending {
		t.Errorf("expected default status pending, got %q", replaced[0].Status)
	}
	if repo.snapshotCalls != 0 {
		t.Errorf("expected 0 snapshot loads without quota-on-sync, got %d", repo.snapshotCalls)
	}
}

func TestReplace_QuotaOnSyncRejectsOverbooked(t *testing.T) {
	cfg := testConfig()
	cfg.QuotaOnSync = true
	repo := &mockClientRepository{
		findAllSnapshotFunc: func(ctx context.Context) ([]*model.Client, error) {
			return occupants(3, "2025-07-01", "2025-07-05"), nil
		},
	}
	svc := newTestService(repo, &mockDayLockRepository{}, cfg, nil)

	reservations := []model.Reservation{
		{Start: "2025-07-02", End: "2025-07-03"},
	}
	err := svc.Replace(context.Background(), clientID, reservations)
	if err == nil {
		t.Fatal("expected quota refusal with quota-on-sync enabled")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeQuotaExceeded {
		t.Errorf("expected quota exceeded error, got %v", err)
	}
}

// ────────────────────────────────────────────────
// Tests for Occupancy()
// ────────────────────────────────────────────────

func TestOccupancy_CountsAnyStatus(t *testing.T) {
	cfg := testConfig()
	repo := &mockClientRepository{
		findAllSnapshotFunc: func(ctx context.Context) ([]*model.Client, error) {
			return []*model.Client{
				{ID: "a1111111-1111-4111-8111-111111111111", Reservations: []model.Reservation{
					{ID: "r1", Start: "2025-07-01", End: "2025-07-05", Status: model.StatusCancelled},
				}},
				{ID: "a2222222-2222-4222-8222-222222222222", Reservations: []model.Reservation{
					{ID: "r2", Start: "2025-07-06", End: "2025-07-07", Status: model.StatusConfirmed},
				}},
			}, nil
		},
	}
	svc := newTestService(repo, &mockDayLockRepository{}, cfg, nil)

	occupied, err := svc.Occupancy(context.Background(), "2025-07-03", "")
	if err != nil {
		t.Fatalf("Occupancy failed: %v", err)
	}
	if len(occupied) != 1 {
		t.Fatalf("expected 1 occupant, got %d", len(occupied))
	}
	if occupied[0].ID != "a1111111-1111-4111-8111-111111111111" {
		t.Errorf("expected the cancelled stay to still occupy the day")
	}
}

func TestOccupancy_ExcludesClient(t *testing.T) {
	cfg := testConfig()
	repo := &mockClientRepository{
		findAllSnapshotFunc: func(ctx context.Context) ([]*model.Client, error) {
			return occupants(2, "2025-07-01", "2025-07-05"), nil
		},
	}
	svc := newTestService(repo, &mockDayLockRepository{}, cfg, nil)

	occupied, err := svc.Occupancy(context.Background(), "2025-07-03", "a1111111-1111-4111-8111-111111111111")
	if err != nil {
		t.Fatalf("Occupancy failed: %v", err)
	}
	if len(occupied) != 1 {
		t.Errorf("expected the excluded client to be dropped, got %d occupants", len(occupied))
	}
}

func TestOccupancy_RejectsBadDate(t *testing.T) {
	cfg := testConfig()
	svc := newTestService(&mockClientRepository{}, &mockDayLockRepository{}, cfg, nil)

	for _, day := range []string{"", "2025-7-3", "2025-02-30", "not-a-date"} {
		if _, err := svc.Occupancy(context.Background(), day, ""); err == nil {
			t.Errorf("expected error for date %q", day)
		}
	}
}
