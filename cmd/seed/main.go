// Command main runs the database seeder for Clipmark.
package main

import (
	"flag"
	"log"

	"clipmark/internal/config"
	"clipmark/internal/database"
	"clipmark/internal/seed"
)

func main() {
	// Parse command line flags
	numCreators := flag.Int("creators", 25, "Number of creators to create")
	numClippers := flag.Int("clippers", 25, "Number of clippers to create")
	numClips := flag.Int("clips", 100, "Number of clip submissions to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plain-text passwords for faster seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d creators, %d clippers, %d clips, clean=%v\n", *numCreators, *numClippers, *numClips, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		NumCreators: *numCreators,
		NumClippers: *numClippers,
		NumClips:    *numClips,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *skipBcrypt,
	})

	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All seeded accounts have the password: password123")
}
