package mongo

import (
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDoc struct {
	ID        string             `bson:"_id"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Tokens    []tokenDoc         `bson:"tokens"`
	CreatedAt primitive.DateTime `bson:"createdAt"`
	UpdatedAt primitive.DateTime `bson:"updatedAt"`
}

type tokenDoc struct {
	Access    string              `bson:"access"`
	Token     string              `bson:"token"` // fingerprint, never the raw JWT
	CreatedAt primitive.DateTime  `bson:"createdAt"`
	ExpiresAt *primitive.DateTime `bson:"expiresAt,omitempty"`
}

type todoDoc struct {
	ID          string             `bson:"_id"`
	Creator     string             `bson:"_creator"`
	Text        string             `bson:"text"`
	Completed   bool               `bson:"completed"`
	CompletedAt *int64             `bson:"completedAt"`
	CreatedAt   primitive.DateTime `bson:"createdAt"`
	UpdatedAt   primitive.DateTime `bson:"updatedAt"`
}

func toDateTime(t time.Time) primitive.DateTime { return primitive.NewDateTimeFromTime(t) }

func fromDateTime(d primitive.DateTime) time.Time { return d.Time().UTC() }

func toMillisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillisPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

func newTokenDoc(t domain.Token) tokenDoc {
	doc := tokenDoc{
		Access:    t.Access,
		Token:     t.Fingerprint,
		CreatedAt: toDateTime(t.CreatedAt),
	}
	if t.ExpiresAt != nil {
		exp := toDateTime(*t.ExpiresAt)
		doc.ExpiresAt = &exp
	}
	return doc
}

func (d tokenDoc) toDomain() domain.Token {
	t := domain.Token{
		Access:      d.Access,
		Fingerprint: d.Token,
		CreatedAt:   fromDateTime(d.CreatedAt),
	}
	if d.ExpiresAt != nil {
		exp := fromDateTime(*d.ExpiresAt)
		t.ExpiresAt = &exp
	}
	return t
}

func newUserDoc(u domain.User) userDoc {
	tokens := make([]tokenDoc, 0, len(u.Tokens))
	for _, t := range u.Tokens {
		tokens = append(tokens, newTokenDoc(t))
	}
	return userDoc{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Tokens:    tokens,
		CreatedAt: toDateTime(u.CreatedAt),
		UpdatedAt: toDateTime(u.UpdatedAt),
	}
}

func (d userDoc) toDomain() domain.User {
	u := domain.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    fromDateTime(d.CreatedAt),
		UpdatedAt:    fromDateTime(d.UpdatedAt),
	}
	for _, t := range d.Tokens {
		u.Tokens = append(u.Tokens, t.toDomain())
	}
	return u
}

func newTodoDoc(t domain.Todo) todoDoc {
	return todoDoc{
		ID:          t.ID,
		Creator:     t.OwnerID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: toMillisPtr(t.CompletedAt),
		CreatedAt:   toDateTime(t.CreatedAt),
		UpdatedAt:   toDateTime(t.UpdatedAt),
	}
}

func (d todoDoc) toDomain() domain.Todo {
	return domain.Todo{
		ID:          d.ID,
		OwnerID:     d.Creator,
		Text:        d.Text,
		Completed:   d.Completed,
		CompletedAt: fromMillisPtr(d.CompletedAt),
		CreatedAt:   fromDateTime(d.CreatedAt),
		UpdatedAt:   fromDateTime(d.UpdatedAt),
	}
}
