// Command seed imports scenario cards from a JSON file and ensures the
// collections and indexes the API relies on. Scenarios are the only entity
// created outside the API, so this is the whole import story.
//
// Usage:
//
//	seed -file data/scenarios.json
//	seed -indexes-only
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/knowthatperson/knowthatperson/backend/api/internal/config"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/database"
	"github.com/knowthatperson/knowthatperson/backend/api/internal/models"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/logger"
)

// seedScenario matches the JSON export format; fullText is preferred over
// story when both are present.
type seedScenario struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	FullText string   `json:"fullText"`
	Story    string   `json:"story"`
	Tags     []string `json:"tags"`
}

func main() {
	file := flag.String("file", "data/scenarios.json", "path to the scenarios JSON file")
	indexesOnly := flag.Bool("indexes-only", false, "only ensure collections and indexes, import nothing")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.MongoDB.Database)
	if err := database.EnsureCollections(ctx, db); err != nil {
		logger.Fatalf("failed to ensure collections: %v", err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatalf("failed to ensure indexes: %v", err)
	}
	logger.Infof("collections and indexes ensured")

	if *indexesOnly {
		return
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatalf("failed to read %s: %v", *file, err)
	}
	var seeds []seedScenario
	if err := json.Unmarshal(raw, &seeds); err != nil {
		logger.Fatalf("failed to parse %s: %v", *file, err)
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(seeds))
	for _, s := range seeds {
		story := s.FullText
		if story == "" {
			story = s.Story
		}
		tags := s.Tags
		if tags == nil {
			tags = []string{}
		}
		docs = append(docs, models.Scenario{
			Title:      s.Title,
			Category:   s.Category,
			Story:      story,
			Tags:       tags,
			ShareCount: 0,
			Status:     models.StatusActive,
			CreatedAt:  now,
		})
	}
	if len(docs) == 0 {
		logger.Warnf("no scenarios found in %s", *file)
		return
	}

	res, err := db.Collection(database.ScenariosCollection).InsertMany(ctx, docs)
	if err != nil {
		logger.Fatalf("failed to insert scenarios: %v", err)
	}
	logger.Infof("inserted %d scenarios", len(res.InsertedIDs))
}
