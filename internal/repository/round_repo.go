package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wordguess/internal/model"
)

// RoundRepo archives finished rounds for the operator's history view
type RoundRepo interface {
	Create(ctx context.Context, round *model.RoundRecord) error
	Recent(ctx context.Context, limit int) ([]model.RoundRecord, error)
}

type roundRepo struct {
	collection *mongo.Collection
}

// NewRoundRepo creates a new round repository
func NewRoundRepo(db *mongo.Database) RoundRepo {
	return &roundRepo{
		collection: db.Collection("rounds"),
	}
}

func (r *roundRepo) Create(ctx context.Context, round *model.RoundRecord) error {
	if round.ID == "" {
		round.ID = primitive.NewObjectID().Hex()
	}
	if round.EndedAt.IsZero() {
		round.EndedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, round)
	return err
}

func (r *roundRepo) Recent(ctx context.Context, limit int) ([]model.RoundRecord, error) {
	opts := options.Find().
		SetSort(bson.M{"endedAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rounds []model.RoundRecord
	if err := cursor.All(ctx, &rounds); err != nil {
		return nil, err
	}
	return rounds, nil
}
