// Seeds the word list from a JSON file of {word, hint, difficulty, category}
// entries. Existing words are replaced, not duplicated.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wordguess/internal/config"
	"wordguess/internal/model"
	"wordguess/internal/repository"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	file := flag.String("file", "words.json", "path to the word list JSON file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to read word list")
	}

	var entries []model.WordEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatal().Err(err).Msg("failed to parse word list")
	}
	if len(entries) == 0 {
		log.Fatal().Msg("word list file contains no entries")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)

	repo := repository.NewWordRepo(client.Database(cfg.MongoDB))

	seeded := 0
	for i := range entries {
		if entries[i].Word == "" || entries[i].Hint == "" {
			log.Warn().Int("index", i).Msg("skipping entry without word or hint")
			continue
		}
		if err := repo.Upsert(ctx, &entries[i]); err != nil {
			log.Fatal().Err(err).Str("word", entries[i].Word).Msg("failed to seed word")
		}
		seeded++
	}

	log.Info().Int("count", seeded).Msg("word list seeded")
}
