package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var _ store.Store = (*Store)(nil)

const (
	usersCollection = "users"
	todosCollection = "todos"
)

// Store keeps users (with their session tokens embedded) and todos in two
// collections of a single database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri and selects dbName. The connection is verified
// with a primary ping before returning.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

func (s *Store) Users() store.Users { return &usersRepo{c: s.db.Collection(usersCollection)} }
func (s *Store) Todos() store.Todos { return &todosRepo{c: s.db.Collection(todosCollection)} }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// ApplyMigrations creates the indexes the repositories rely on. Index
// creation is idempotent so this is safe on every boot.
func (s *Store) ApplyMigrations(ctx context.Context) error {
	users := s.db.Collection(usersCollection)
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{
			Keys:    bson.D{{Key: "tokens.token", Value: 1}},
			Options: options.Index().SetName("tokens_token"),
		},
	})
	if err != nil {
		return err
	}

	todos := s.db.Collection(todosCollection)
	_, err = todos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "_creator", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("creator_id"),
	})
	return err
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
