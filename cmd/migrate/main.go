package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/realchief/RenderShotPanel/internal/storage/postgres"
	"github.com/realchief/RenderShotPanel/migrations"
)

// Applies the embedded SQL migrations against the database configured
// through the same POSTGRES_* env vars as the server. -dir switches to
// an on-disk migrations directory instead.
func main() {
	dir := flag.String("dir", "", "on-disk migrations directory (default: embedded)")
	command := flag.String("command", "up", "goose command (up, down, status)")
	flag.Parse()

	cfg, err := postgres.LoadConfigFromEnv(context.Background())
	if err != nil {
		log.Fatal("Failed to load DB config:", err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set dialect:", err)
	}

	migrationsDir := *dir
	if migrationsDir == "" {
		goose.SetBaseFS(migrations.FS)
		migrationsDir = "."
	}

	switch *command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		log.Fatalf("Unknown command %q", *command)
	}
	if err != nil {
		log.Fatalf("Migration %s failed: %v", *command, err)
	}

	log.Printf("Migration %s completed", *command)
}
