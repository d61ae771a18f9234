// Command main runs the database seeder for Linkstash.
package main

import (
	"flag"
	"log"

	"linkstash/internal/config"
	"linkstash/internal/database"
	"linkstash/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numBookmarks := flag.Int("bookmarks", 150, "Number of bookmarks to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Seeding: %d users, %d bookmarks, clean=%v", *numUsers, *numBookmarks, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumUsers:     *numUsers,
		NumBookmarks: *numBookmarks,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Test users have the password: password123")
}
