// Command main runs the database seeder for Vitrine.
package main

import (
	"flag"
	"log"

	"vitrine/internal/config"
	"vitrine/internal/database"
	"vitrine/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of subscribers to create")
	numPosts := flag.Int("posts", 100, "Number of feed posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}
	if err := s.SeedDemo(*numUsers, *numPosts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users and %d posts", *numUsers+1, *numPosts)
}
