package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	clientserrors "lumiere/internal/clients/errors"
	"lumiere/pkg/config"
	mongotx "lumiere/pkg/db/mongo"
	"lumiere/pkg/model"
)

const (
	CollectionName = "Clients"
)

type mongoClientRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, id string) (*model.Client, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Client, error)
	FindAllSnapshot(ctx context.Context) ([]*model.Client, error)
	Update(ctx context.Context, id string, client *model.Client) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	PushReservation(ctx context.Context, id string, reservation *model.Reservation) error
	PullReservation(ctx context.Context, id string, reservationID string) error
	ReplaceReservations(ctx context.Context, id string, reservations []model.Reservation) error
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoClientRepository(cfg *config.Config) ClientRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoClientRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel function, as we cannot wrap SessionContext
// without breaking transaction semantics.
func (r *mongoClientRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoClientRepository) Create(ctx context.Context, client *model.Client) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	client.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if client.Reservations == nil {
		client.Reservations = []model.Reservation{}
	}

	_, err := r.collection.InsertOne(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (r *mongoClientRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var client model.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, clientserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	return &client, nil
}

func (r *mongoClientRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Client, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*model.Client
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}

	return clients, nil
}

// FindAllSnapshot loads every dossier in one pass. The quota engine
// evaluates occupancy against this snapshot.
func (r *mongoClientRepository) FindAllSnapshot(ctx context.Context) ([]*model.Client, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to load client snapshot: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*model.Client
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode client snapshot: %w", err)
	}

	return clients, nil
}

func (r *mongoClientRepository) Update(ctx context.Context, id string, client *model.Client) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"first_name":      client.FirstName,
			"last_name":       client.LastName,
			"phone":           client.Phone,
			"country":         client.Country,
			"notes":           client.Notes,
			"has_attachment":  client.HasAttachment,
			"attachment_url":  client.AttachmentURL,
			"attachment_name": client.AttachmentName,
			"attachment_key":  client.AttachmentKey,
			"reservations":    client.Reservations,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, clientserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoClientRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if result.DeletedCount == 0 {
		return clientserrors.ErrNotFound
	}

	return nil
}

func (r *mongoClientRepository) PushReservation(ctx context.Context, id string, reservation *model.Reservation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":             id,
		"reservations.id": bson.M{"$ne": reservation.ID},
	}
	update := bson.M{"$push": bson.M{"reservations": reservation}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to push reservation: %w", err)
	}

	if result.MatchedCount == 0 {
		// Either the client is missing or the reservation ID is taken.
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return clientserrors.ErrNotFound
		}
		return clientserrors.ErrDuplicateReservation
	}

	return nil
}

func (r *mongoClientRepository) PullReservation(ctx context.Context, id string, reservationID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	update := bson.M{"$pull": bson.M{"reservations": bson.M{"id": reservationID}}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to pull reservation: %w", err)
	}

	if result.MatchedCount == 0 {
		return clientserrors.ErrNotFound
	}
	if result.ModifiedCount == 0 {
		return clientserrors.ErrReservationNotFound
	}

	return nil
}

func (r *mongoClientRepository) ReplaceReservations(ctx context.Context, id string, reservations []model.Reservation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if reservations == nil {
		reservations = []model.Reservation{}
	}

	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"reservations": reservations}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to replace reservations: %w", err)
	}

	if result.MatchedCount == 0 {
		return clientserrors.ErrNotFound
	}

	return nil
}

func (r *mongoClientRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}

	return count, nil
}

func (r *mongoClientRepository) exists(ctx context.Context, id string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check client existence: %w", err)
	}
	return count > 0, nil
}

func (r *mongoClientRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
