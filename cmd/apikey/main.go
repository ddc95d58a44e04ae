package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rezkam/bucketlist/internal/application/auth"
	"github.com/rezkam/bucketlist/internal/infrastructure/persistence/postgres"
)

// API key format when not overridden by flags.
const (
	defaultKeyType     = "sk"
	defaultServiceName = "bucket"
	defaultVersion     = "v1"
)

// Command-line tool to create a profile-bound API key in the database.
// THIS is not a production-grade tool, just a simple utility for development/testing purposes.
func main() {
	profile := flag.String("profile", "", "Profile ID the key belongs to (required)")
	displayName := flag.String("display-name", "", "Display name for a newly created profile")
	name := flag.String("name", "", "Name/description for the API key (required)")
	days := flag.Int("days", 0, "Number of days until expiration (0 = never expires)")

	flag.Parse()

	if *profile == "" || *name == "" {
		flag.Usage()
		log.Fatal("both -profile and -name are required")
	}

	dsn := os.Getenv("BUCKETLIST_DB_DSN")
	if dsn == "" {
		log.Fatal("BUCKETLIST_DB_DSN is required")
	}

	ctx := context.Background()

	store, err := postgres.NewPostgresStore(ctx, dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	if err := store.EnsureProfile(ctx, *profile, *displayName); err != nil {
		log.Fatalf("Failed to ensure profile: %v", err)
	}

	var expiresAt *time.Time
	if *days > 0 {
		expiry := time.Now().UTC().AddDate(0, 0, *days)
		expiresAt = &expiry
	}

	apiKey, err := auth.CreateAPIKey(ctx, store, *profile, defaultKeyType, defaultServiceName, defaultVersion, *name, expiresAt)
	if err != nil {
		log.Fatalf("Failed to create API key: %v", err)
	}

	fmt.Println("\n API Key created successfully!")
	fmt.Println("----------------------------------------")
	fmt.Printf("Profile: %s\n", *profile)
	fmt.Printf("Name: %s\n", *name)
	if expiresAt != nil {
		fmt.Printf("Expires: %s (%d days)\n", expiresAt.Format(time.RFC3339), *days)
	} else {
		fmt.Println("Expires: Never")
	}
	fmt.Println("----------------------------------------")
	fmt.Printf("\nAPI Key: %s\n\n", apiKey)
	fmt.Println("IMPORTANT: Save this key now! It will not be shown again.")
	fmt.Println("----------------------------------------")
	fmt.Println("Usage example:")
	fmt.Printf("  curl -H \"Authorization: Bearer %s\" http://localhost:8080/api/items\n", apiKey)
}
