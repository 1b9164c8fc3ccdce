package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	clientserrors "lumiere/internal/clients/errors"
	"lumiere/internal/clients/repository"
	"lumiere/internal/clients/validator"
	"lumiere/pkg/config"
	apperrors "lumiere/pkg/errors"
	"lumiere/pkg/kafka"
	"lumiere/pkg/model"
	"lumiere/pkg/quota"
)

// EventPublisher is the slice of the Kafka producer the service needs.
// A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type ReservationService interface {
	Admit(ctx context.Context, clientID string, reservation *model.Reservation) error
	Remove(ctx context.Context, clientID string, reservationID string) error
	Replace(ctx context.Context, clientID string, reservations []model.Reservation) error
	Occupancy(ctx context.Context, day string, excludeID string) ([]*model.Client, error)
}

type reservationService struct {
	repo      repository.ClientRepository
	lockRepo  repository.DayLockRepository
	validator *validator.ClientValidator
	cfg       *config.Config
	events    EventPublisher
}

func NewReservationService(
	repo repository.ClientRepository,
	lockRepo repository.DayLockRepository,
	validator *validator.ClientValidator,
	cfg *config.Config,
	events EventPublisher,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		cfg:       cfg,
		events:    events,
	}
}

// Admit runs the daily-quota check for the candidate stay and commits
// it on success. Advisory locks on every day of the range serialize
// concurrent admissions touching overlapping dates, so two candidates
// cannot both pass the check and push the same day over quota.
func (s *reservationService) Admit(ctx context.Context, clientID string, reservation *model.Reservation) error {
	if clientID == "" {
		return apperrors.InvalidInput("Client ID cannot be empty")
	}
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	if reservation.Status == "" {
		reservation.Status = model.StatusPending
	}

	if err := s.validator.ValidateReservation(reservation); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "client_id", clientID, "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}

	lockIDs, err := s.acquireDayLocks(ctx, reservation.Start, reservation.End)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.lockRepo.DeleteMany(ctx, lockIDs); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release day locks", "lock_count", len(lockIDs), "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		snapshot, err := s.repo.FindAllSnapshot(sessCtx)
		if err != nil {
			return apperrors.Internal("Failed to load client snapshot", err)
		}

		if err := quota.Admit(snapshot, reservation.Start, reservation.End, clientID, s.cfg.DailyQuota); err != nil {
			var exceeded *quota.ExceededError
			if errors.As(err, &exceeded) {
				return apperrors.QuotaExceeded(exceeded.Day, exceeded.Quota)
			}
			return apperrors.InvalidInput(err.Error())
		}

		if err := s.repo.PushReservation(sessCtx, clientID, reservation); err != nil {
			if errors.Is(err, clientserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Client", clientID)
			}
			if errors.Is(err, clientserrors.ErrDuplicateReservation) {
				return apperrors.Conflict("Reservation ID already exists on this client")
			}
			return apperrors.Internal("Failed to store reservation", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to admit reservation",
			"client_id", clientID,
			"reservation_id", reservation.ID,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Reservation admitted successfully",
		"client_id", clientID,
		"reservation_id", reservation.ID,
		"start", reservation.Start,
		"end", reservation.End,
	)
	s.publishReservationEvent(ctx, kafka.EventReservationAdmitted, clientID, reservation)
	return nil
}

// Remove deletes a stay. Removal frees capacity, so it never consults
// the quota and cannot fail with a quota error.
func (s *reservationService) Remove(ctx context.Context, clientID string, reservationID string) error {
	if clientID == "" {
		return apperrors.InvalidInput("Client ID cannot be empty")
	}
	if reservationID == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	err := s.repo.PullReservation(ctx, clientID, reservationID)
	if err != nil {
		if errors.Is(err, clientserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Client", clientID)
		}
		if errors.Is(err, clientserrors.ErrReservationNotFound) {
			return apperrors.NotFoundWithID("Reservation", reservationID)
		}
		s.cfg.Log.Error("Failed to remove reservation",
			"client_id", clientID,
			"reservation_id", reservationID,
			"error", err,
		)
		return apperrors.Internal("Failed to remove reservation", err)
	}

	s.cfg.Log.Info("Reservation removed successfully",
		"client_id", clientID,
		"reservation_id", reservationID,
	)
	s.publishReservationEvent(ctx, kafka.EventReservationRemoved, clientID, &model.Reservation{ID: reservationID})
	return nil
}

// Replace swaps the client's whole reservation set. The incoming set is
// trusted by default; QUOTA_ON_SYNC turns on re-admission of every stay.
func (s *reservationService) Replace(ctx context.Context, clientID string, reservations []model.Reservation) error {
	if clientID == "" {
		return apperrors.InvalidInput("Client ID cannot be empty")
	}

	for i := range reservations {
		if reservations[i].ID == "" {
			reservations[i].ID = uuid.New().String()
		}
		if reservations[i].Status == "" {
			reservations[i].Status = model.StatusPending
		}
	}

	if err := s.validator.ValidateReservations(reservations); err != nil {
		s.cfg.Log.Warn("Reservation set validation failed", "client_id", clientID, "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}

	if s.cfg.QuotaOnSync {
		snapshot, err := s.repo.FindAllSnapshot(ctx)
		if err != nil {
			return apperrors.Internal("Failed to load client snapshot", err)
		}
		for _, r := range reservations {
			if err := quota.Admit(snapshot, r.Start, r.End, clientID, s.cfg.DailyQuota); err != nil {
				var exceeded *quota.ExceededError
				if errors.As(err, &exceeded) {
					return apperrors.QuotaExceeded(exceeded.Day, exceeded.Quota)
				}
				return apperrors.InvalidInput(err.Error())
			}
		}
	}

	if err := s.repo.ReplaceReservations(ctx, clientID, reservations); err != nil {
		if errors.Is(err, clientserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Client", clientID)
		}
		s.cfg.Log.Error("Failed to replace reservations", "client_id", clientID, "error", err)
		return apperrors.Internal("Failed to replace reservations", err)
	}

	s.cfg.Log.Info("Reservations replaced successfully",
		"client_id", clientID,
		"count", len(reservations),
	)
	s.publishReplaceEvent(ctx, clientID, len(reservations))
	return nil
}

// Occupancy lists the clients holding a stay covering day, excluding
// excludeID when set. Reservation status does not matter.
func (s *reservationService) Occupancy(ctx context.Context, day string, excludeID string) ([]*model.Client, error) {
	if _, err := quota.ParseDay(day); err != nil {
		return nil, apperrors.InvalidInput("date must be a calendar date in YYYY-MM-DD format")
	}

	snapshot, err := s.repo.FindAllSnapshot(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load client snapshot", err)
	}

	occupied := quota.Occupancy(snapshot, day, excludeID)
	if occupied == nil {
		occupied = []*model.Client{}
	}
	return occupied, nil
}

// --- Helpers ---

// acquireDayLocks takes an advisory lock for every day in the range,
// releasing any partial set on failure. Locks auto-expire via TTL in
// case the holder dies before releasing.
func (s *reservationService) acquireDayLocks(ctx context.Context, start, end string) ([]string, error) {
	var acquired []string

	for day := range quota.Days(start, end) {
		lockID := "day_lock_" + day
		lock := &model.DayLock{
			ID:        lockID,
			ExpiresAt: time.Now().Add(10 * time.Second),
		}

		if _, err := s.lockRepo.Create(ctx, lock); err != nil {
			if releaseErr := s.lockRepo.DeleteMany(ctx, acquired); releaseErr != nil {
				s.cfg.Log.Warn("Failed to release day locks", "lock_count", len(acquired), "error", releaseErr)
			}
			if mongo.IsDuplicateKeyError(err) {
				return nil, apperrors.Conflict("Another reservation for these dates is being processed. Please try again.")
			}
			return nil, apperrors.Internal("Failed to acquire day lock", err)
		}
		acquired = append(acquired, lockID)
	}

	return acquired, nil
}

func (s *reservationService) publishReservationEvent(ctx context.Context, eventType string, clientID string, reservation *model.Reservation) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(clientID).
		WithEventType(eventType).
		WithSource("clients-service").
		WithValue(kafka.ReservationEvent{
			ClientID:      clientID,
			ReservationID: reservation.ID,
			Start:         reservation.Start,
			End:           reservation.End,
			Status:        reservation.Status,
		}).
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"event_type", eventType,
			"client_id", clientID,
			"error", err,
		)
	}
}

func (s *reservationService) publishReplaceEvent(ctx context.Context, clientID string, count int) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(clientID).
		WithEventType(kafka.EventReservationReplaced).
		WithSource("clients-service").
		WithValue(kafka.ReservationEvent{
			ClientID: clientID,
			Count:    count,
		}).
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"event_type", kafka.EventReservationReplaced,
			"client_id", clientID,
			"error", err,
		)
	}
}
