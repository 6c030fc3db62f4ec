package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type usersRepo struct {
	c *mongo.Collection
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	if _, err := r.c.InsertOne(ctx, newUserDoc(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *usersRepo) GetUserByToken(ctx context.Context, userID, access, fingerprint string) (domain.User, error) {
	return r.findOne(ctx, bson.M{
		"_id": userID,
		"tokens": bson.M{"$elemMatch": bson.M{
			"access": access,
			"token":  fingerprint,
		}},
	})
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, hash string, now time.Time) error {
	res, err := r.c.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"password": hash, "updatedAt": toDateTime(now)},
	})
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) AddToken(ctx context.Context, userID string, t domain.Token) error {
	res, err := r.c.UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"tokens": newTokenDoc(t)},
		"$set":  bson.M{"updatedAt": toDateTime(t.CreatedAt)},
	})
	if err != nil {
		return fmt.Errorf("push token: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) RemoveToken(ctx context.Context, userID, fingerprint string) error {
	_, err := r.c.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"tokens": bson.M{"token": fingerprint}},
	})
	if err != nil {
		return fmt.Errorf("pull token: %w", err)
	}
	return nil
}

func (r *usersRepo) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	expired := bson.M{"expiresAt": bson.M{"$lte": toDateTime(now)}}
	res, err := r.c.UpdateMany(ctx,
		bson.M{"tokens": bson.M{"$elemMatch": expired}},
		bson.M{"$pull": bson.M{"tokens": expired}},
	)
	if err != nil {
		return 0, fmt.Errorf("pull expired tokens: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *usersRepo) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var doc userDoc
	if err := r.c.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}
