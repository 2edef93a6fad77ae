package mongodb

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/platform/logger"
	"github.com/phrazzld/keyring-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserStore implements store.UserStore on a MongoDB collection.
type MongoUserStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.UserStore = (*MongoUserStore)(nil)

// NewMongoUserStore creates a MongoUserStore backed by the users collection of db.
func NewMongoUserStore(db *mongo.Database, logger *slog.Logger) *MongoUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoUserStore{
		coll:   db.Collection(usersCollection),
		logger: logger.With(slog.String("component", "mongo_user_store")),
	}
}

// Create implements store.UserStore.Create
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.coll.InsertOne(ctx, toDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Debug("email already exists", slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to insert user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *MongoUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	var doc userDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to find user",
			slog.String("error", err.Error()))
		return nil, err
	}
	return doc.toDomain()
}

// IsEmailTaken implements store.UserStore.IsEmailTaken
func (s *MongoUserStore) IsEmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	filter := bson.D{
		{Key: "email", Value: email},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: excludeID.String()}}},
	}
	n, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check email",
			slog.String("error", err.Error()))
		return false, err
	}
	return n > 0, nil
}

// List implements store.UserStore.List
func (s *MongoUserStore) List(
	ctx context.Context,
	filter store.UserFilter,
	opts store.QueryOptions,
) (*store.UserPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := filterDocument(filter)
	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		log.Error("failed to count users", slog.String("error", err.Error()))
		return nil, err
	}

	findOpts := options.Find().
		SetSort(sortDocument(opts.SortKeys())).
		SetSkip(int64(opts.Skip())).
		SetLimit(int64(opts.Limit))
	cur, err := s.coll.Find(ctx, query, findOpts)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, err
	}

	results, err := decodeUsers(ctx, cur)
	if err != nil {
		log.Error("failed to decode users", slog.String("error", err.Error()))
		return nil, err
	}

	return store.NewUserPage(results, int(total), opts), nil
}

// Save implements store.UserStore.Save
func (s *MongoUserStore) Save(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: user.ID.String()}}, toDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Debug("email already exists", slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to replace user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}
	if res.MatchedCount < 1 {
		return store.ErrUserNotFound
	}
	return nil
}

// Delete implements store.UserStore.Delete
func (s *MongoUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}
	if res.DeletedCount < 1 {
		return store.ErrUserNotFound
	}
	return nil
}

func decodeUsers(ctx context.Context, cur *mongo.Cursor) ([]*domain.User, error) {
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var doc userDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		u, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
