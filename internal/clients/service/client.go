package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	clientserrors "lumiere/internal/clients/errors"
	"lumiere/internal/clients/repository"
	"lumiere/internal/clients/validator"
	"lumiere/pkg/config"
	apperrors "lumiere/pkg/errors"
	"lumiere/pkg/kafka"
	"lumiere/pkg/locale"
	"lumiere/pkg/model"
	"lumiere/pkg/quota"
	"lumiere/pkg/sanitizer"
)

// EventPublisher is the slice of the Kafka producer the service needs.
// A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// AttachmentRemover deletes a stored attachment object by key. Used to
// cascade the dossier's attachment on client deletion.
type AttachmentRemover interface {
	Remove(ctx context.Context, key string) error
}

type ClientService interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id string) (*model.Client, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Client, int64, error)
	Update(ctx context.Context, id string, updates *model.ClientUpdate) error
	Delete(ctx context.Context, id string) error
	Snapshot(ctx context.Context) ([]*model.Client, error)
}

type clientService struct {
	repo        repository.ClientRepository
	validator   *validator.ClientValidator
	cfg         *config.Config
	events      EventPublisher
	attachments AttachmentRemover
}

func NewClientService(
	repo repository.ClientRepository,
	validator *validator.ClientValidator,
	cfg *config.Config,
	events EventPublisher,
	attachments AttachmentRemover,
) ClientService {
	return &clientService{
		repo:        repo,
		validator:   validator,
		cfg:         cfg,
		events:      events,
		attachments: attachments,
	}
}

func (s *clientService) Create(ctx context.Context, client *model.Client) error {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	s.sanitize(client)
	s.applyDefaults(client)
	for i := range client.Reservations {
		if client.Reservations[i].ID == "" {
			client.Reservations[i].ID = uuid.New().String()
		}
		if client.Reservations[i].Status == "" {
			client.Reservations[i].Status = model.StatusPending
		}
	}

	if err := s.validate(client); err != nil {
		return err
	}

	// An initial reservation set rides through admission like any other
	// candidate stay.
	if len(client.Reservations) > 0 {
		if err := s.admitReplacementSet(ctx, client.ID, client.Reservations); err != nil {
			return err
		}
	}

	if err := s.repo.Create(ctx, client); err != nil {
		s.cfg.Log.Error("Failed to create client", "error", err)
		return apperrors.Internal("Failed to create client", err)
	}

	s.cfg.Log.Info("Client created successfully",
		"id", client.ID,
		"first_name", client.FirstName,
		"last_name", client.LastName,
	)
	s.publishClientEvent(ctx, kafka.EventClientCreated, client)
	return nil
}

func (s *clientService) GetByID(ctx context.Context, id string) (*model.Client, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Client ID cannot be empty")
	}

	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Client", id)
		}
		return nil, apperrors.Internal("Failed to retrieve client", err)
	}

	return client, nil
}

func (s *clientService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Client, int64, error) {
	var count int64
	var clients []*model.Client
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count clients", "error", errCount)
			errCount = apperrors.Internal("Failed to count clients", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		clients, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list clients", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve clients", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return clients, count, nil
}

func (s *clientService) Update(ctx context.Context, id string, updates *model.ClientUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Client ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Client", id)
		}
		return apperrors.Internal("Failed to check client existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Client update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeClientUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	// A replacement reservation set is trusted by default; QUOTA_ON_SYNC
	// turns on re-admission of every stay in the incoming set.
	if updates.Reservations != nil && s.cfg.QuotaOnSync {
		if err := s.admitReplacementSet(ctx, id, *updates.Reservations); err != nil {
			return err
		}
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, clientserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Client", id)
		}
		s.cfg.Log.Error("Failed to update client", "id", id, "error", err)
		return apperrors.Internal("Failed to update client", err)
	}

	s.cfg.Log.Info("Client updated successfully", "id", id)
	s.publishClientEvent(ctx, kafka.EventClientUpdated, merged)
	if updates.Reservations != nil {
		s.publishReservationReplaced(ctx, id, len(*updates.Reservations))
	}
	return nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Client ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Client", id)
		}
		return apperrors.Internal("Failed to check client existence", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, clientserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Client", id)
		}
		return apperrors.Internal("Failed to delete client", err)
	}

	// Reservations are embedded so they go with the document; the stored
	// attachment needs an explicit cascade.
	if existing.AttachmentKey != "" && s.attachments != nil {
		if err := s.attachments.Remove(ctx, existing.AttachmentKey); err != nil {
			s.cfg.Log.Warn("Failed to remove client attachment",
				"id", id,
				"attachment_key", existing.AttachmentKey,
				"error", err,
			)
		}
	}

	s.cfg.Log.Info("Client deleted successfully", "id", id)
	s.publishClientEvent(ctx, kafka.EventClientDeleted, existing)
	return nil
}

func (s *clientService) Snapshot(ctx context.Context) ([]*model.Client, error) {
	clients, err := s.repo.FindAllSnapshot(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load client snapshot", "error", err)
		return nil, apperrors.Internal("Failed to load client snapshot", err)
	}
	return clients, nil
}

// --- Helpers ---

func (s *clientService) sanitize(c *model.Client) {
	c.FirstName = sanitizer.NormalizeName(c.FirstName)
	c.LastName = sanitizer.NormalizeName(c.LastName)
	c.Notes = sanitizer.NormalizeNotes(c.Notes)
	c.Country = sanitizer.NormalizeCountry(c.Country)
	if c.Phone != "" {
		if normalized := sanitizer.NormalizePhone(c.Phone); normalized != "" {
			c.Phone = normalized
		} else {
			c.Phone = sanitizer.TrimAndNormalize(c.Phone)
		}
	}
}

func (s *clientService) applyDefaults(c *model.Client) {
	if c.Country == "" && c.Phone != "" {
		if country := locale.InferCountryFromPhone(c.Phone); country != nil {
			c.Country = country.Name
		}
	}
}

func (s *clientService) mergeClientUpdates(existing *model.Client, updates *model.ClientUpdate) *model.Client {
	merged := *existing

	if updates.FirstName != "" {
		merged.FirstName = updates.FirstName
	}
	if updates.LastName != "" {
		merged.LastName = updates.LastName
	}
	if updates.Phone != nil {
		merged.Phone = *updates.Phone
	}
	if updates.Country != nil {
		merged.Country = *updates.Country
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}
	if updates.HasAttachment != nil {
		merged.HasAttachment = *updates.HasAttachment
	}
	if updates.AttachmentURL != nil {
		merged.AttachmentURL = *updates.AttachmentURL
	}
	if updates.AttachmentName != nil {
		merged.AttachmentName = *updates.AttachmentName
	}
	if updates.AttachmentKey != nil {
		merged.AttachmentKey = *updates.AttachmentKey
	}
	if updates.Reservations != nil {
		merged.Reservations = *updates.Reservations
	}

	return &merged
}

func (s *clientService) validate(client *model.Client) error {
	if err := s.validator.Validate(client); err != nil {
		s.cfg.Log.Warn("Client validation failed", "error", err)
		return apperrors.Validation("Client validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *clientService) admitReplacementSet(ctx context.Context, clientID string, reservations []model.Reservation) error {
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
	return nil
}

func (s *clientService) publishClientEvent(ctx context.Context, eventType string, client *model.Client) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(client.ID).
		WithEventType(eventType).
		WithSource("clients-service").
		WithValue(kafka.ClientEvent{
			ClientID:  client.ID,
			FirstName: client.FirstName,
			LastName:  client.LastName,
			Phone:     client.Phone,
		}).
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish client event", "event_type", eventType, "client_id", client.ID, "error", err)
	}
}

func (s *clientService) publishReservationReplaced(ctx context.Context, clientID string, count int) {
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
		s.cfg.Log.Warn("Failed to publish reservation event", "client_id", clientID, "error", err)
	}
}
