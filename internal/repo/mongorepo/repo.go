package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

const (
	usersColl      = "users"
	productsColl   = "products"
	categoriesColl = "categories"
	countersColl   = "counters"
)

type MongoRepo struct {
	Client *mongo.Client
	DB     *mongo.Database
	now    func() time.Time
}

// Connect dials MongoDB and pings the primary.
func Connect(ctx context.Context, uri, database string) (*MongoRepo, error) {
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return New(client, database), nil
}

func New(client *mongo.Client, database string) *MongoRepo {
	return &MongoRepo{
		Client: client,
		DB:     client.Database(database),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *MongoRepo) Close(ctx context.Context) error {
	return r.Client.Disconnect(ctx)
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx, readpref.Primary())
}

// Migrate creates the indexes the queries rely on.
func (r *MongoRepo) Migrate(ctx context.Context) error {
	_, err := r.DB.Collection(usersColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	_, err = r.DB.Collection(productsColl).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "avg_rating", Value: -1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "slug", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("products index: %w", err)
	}
	return nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %w", repo.ErrNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", repo.ErrConflict, err)
	default:
		return err
	}
}

func (r *MongoRepo) CreateUser(ctx context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = r.now()
	if _, err := r.DB.Collection(usersColl).InsertOne(ctx, userToDoc(u)); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *MongoRepo) findUser(ctx context.Context, filter bson.D) (*domain.User, error) {
	var d userDoc
	opts := options.FindOne().SetProjection(bson.D{{Key: "cart", Value: 0}})
	if err := r.DB.Collection(usersColl).FindOne(ctx, filter, opts).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.toDomain(), nil
}

func (r *MongoRepo) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findUser(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (r *MongoRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, bson.D{{Key: "email", Value: email}})
}
