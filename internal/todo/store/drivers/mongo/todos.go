package mongo

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type todosRepo struct {
	c *mongo.Collection
}

func (r *todosRepo) CreateTodo(ctx context.Context, t domain.Todo) error {
	if _, err := r.c.InsertOne(ctx, newTodoDoc(t)); err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *todosRepo) ListTodos(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	cur, err := r.c.Find(ctx,
		bson.M{"_creator": ownerID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer cur.Close(ctx)

	todos := []domain.Todo{}
	for cur.Next(ctx) {
		var doc todoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		todos = append(todos, doc.toDomain())
	}
	return todos, cur.Err()
}

func (r *todosRepo) GetTodo(ctx context.Context, ownerID, id string) (domain.Todo, error) {
	var doc todoDoc
	if err := r.c.FindOne(ctx, ownedBy(ownerID, id)).Decode(&doc); err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *todosRepo) UpdateTodo(ctx context.Context, ownerID, id string, p domain.TodoPatch) (domain.Todo, error) {
	set := bson.M{"updatedAt": toDateTime(p.UpdatedAt)}
	if p.Text != nil {
		set["text"] = *p.Text
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
		set["completedAt"] = toMillisPtr(p.CompletedAt)
	}

	var doc todoDoc
	err := r.c.FindOneAndUpdate(ctx,
		ownedBy(ownerID, id),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *todosRepo) DeleteTodo(ctx context.Context, ownerID, id string) (domain.Todo, error) {
	var doc todoDoc
	if err := r.c.FindOneAndDelete(ctx, ownedBy(ownerID, id)).Decode(&doc); err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func ownedBy(ownerID, id string) bson.M {
	return bson.M{"_id": id, "_creator": ownerID}
}
