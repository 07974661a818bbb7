package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"friendchat/config"
	"friendchat/internal/repository"
	"friendchat/pkg/database"

	"gorm.io/gorm"
)

const usage = `
friendchat - Database CLI Tool

Usage:
  migrate [flags] [command]

Commands:
  up          Create or update all tables
  status      Show database connection status and row counts
  seed        Replace all users with the fixture users
  seed-dev    Fixture users plus generated fake users
  truncate    Delete every row of every table (DANGEROUS)

Flags:
  -fake-users int    Number of fake users for seed-dev (default 20)
  -fake-pass string  Password of every fake user (default "password123")
  -fake-seed uint    Random seed for fake data, 0 picks a random one

Examples:
  go run ./cmd/migrate up
  go run ./cmd/migrate seed
  go run ./cmd/migrate -fake-users 100 seed-dev
`

func main() {
	fakeUsers := flag.Int("fake-users", 20, "Number of fake users for seed-dev")
	fakePass := flag.String("fake-pass", "password123", "Password of every fake user")
	fakeSeed := flag.Uint64("fake-seed", 0, "Random seed for fake data")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer database.Close(db)

	ctx := context.Background()

	switch command {
	case "up":
		runMigrationsUp(db)
	case "status":
		showStatus(ctx, db)
	case "seed":
		runSeed(ctx, db, &database.SeedConfig{})
	case "seed-dev":
		cfg := database.DefaultSeedConfig()
		cfg.FakeUserCount = *fakeUsers
		cfg.FakePassword = *fakePass
		cfg.FakeSeed = *fakeSeed
		runSeed(ctx, db, cfg)
	case "truncate":
		runTruncate(ctx, db)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(db *gorm.DB) {
	log.Println("🚀 Running migrations UP...")

	if err := repository.InitSchema(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}

func showStatus(ctx context.Context, db *gorm.DB) {
	log.Println("🔍 Checking database status...")

	if err := database.HealthCheck(ctx, db); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Println("✅ Database connection: OK")

	for _, table := range []string{"users", "friend_requests", "friendships", "messages"} {
		count, err := database.TableCount(ctx, db, table)
		if err != nil {
			log.Printf("❌ Table %-16s %v", table, err)
			continue
		}
		log.Printf("✅ Table %-16s exists (%d rows)", table, count)
	}
}

func runSeed(ctx context.Context, db *gorm.DB, cfg *database.SeedConfig) {
	log.Println("🌱 Seeding database...")

	if err := repository.InitSchema(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	result, err := database.Seed(ctx, db, cfg)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("📊 Seed Summary:")
	log.Printf("   - Fixture users: %d", len(result.Fixtures))
	log.Printf("   - Fake users: %d", len(result.FakeUsers))
	log.Println("✅ Seeding completed!")
}

func runTruncate(ctx context.Context, db *gorm.DB) {
	log.Println("⚠️  WARNING: This will delete every row of every table!")

	if err := database.Truncate(ctx, db); err != nil {
		log.Fatalf("❌ Truncate failed: %v", err)
	}

	log.Println("✅ All tables truncated!")
}
