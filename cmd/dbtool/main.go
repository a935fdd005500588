package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"route-insertion-service/internal/adapters/repositories"
	"route-insertion-service/internal/config"
	"route-insertion-service/internal/platform/db"
)

// dbtool creates the schema and loads the seed file into Postgres.
func main() {
	config.LoadDotEnv()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/shipments.json")
	if err := initAndSeed(ctx, conn, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database from %s...", seedPath)
	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
