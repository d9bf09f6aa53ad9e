package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wordguess/internal/model"
)

// WordRepo handles MongoDB operations for the word list
type WordRepo interface {
	Upsert(ctx context.Context, entry *model.WordEntry) error
	List(ctx context.Context) ([]model.WordEntry, error)
	Delete(ctx context.Context, word string) error
	Count(ctx context.Context) (int64, error)
}

type wordRepo struct {
	collection *mongo.Collection
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *mongo.Database) WordRepo {
	return &wordRepo{
		collection: db.Collection("words"),
	}
}

// Upsert inserts or replaces an entry, keyed by its normalized word.
func (r *wordRepo) Upsert(ctx context.Context, entry *model.WordEntry) error {
	entry.Word = strings.ToUpper(strings.TrimSpace(entry.Word))
	entry.Hint = strings.TrimSpace(entry.Hint)
	if entry.Difficulty == "" {
		entry.Difficulty = "medium"
	}
	if entry.Category == "" {
		entry.Category = "custom"
	}
	entry.CreatedAt = time.Now()

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"word": entry.Word},
		entry,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *wordRepo) List(ctx context.Context) ([]model.WordEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []model.WordEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *wordRepo) Delete(ctx context.Context, word string) error {
	word = strings.ToUpper(strings.TrimSpace(word))
	_, err := r.collection.DeleteOne(ctx, bson.M{"word": word})
	return err
}

func (r *wordRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
