package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dimitrije/tasker-api/internal/config"
	"github.com/dimitrije/tasker-api/internal/database"
	"github.com/dimitrije/tasker-api/internal/models"
	"github.com/dimitrije/tasker-api/internal/services"
)

func main() {
	phone := flag.String("phone", "", "phone number of the user")
	status := flag.String("status", "", "ban or activate")
	flag.Parse()

	if *phone == "" || *status == "" {
		fmt.Println("Usage: set-user-status -phone <phone> -status ban|activate")
		os.Exit(1)
	}

	var target models.UserStatus
	switch *status {
	case "ban":
		target = models.UserBanned
	case "activate":
		target = models.UserActive
	default:
		log.Fatalf("Unknown status %q, expected ban or activate", *status)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	user, err := services.NewUserService(db).SetStatus(ctx, *phone, target)
	if err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if target == models.UserBanned {
		if err := services.NewTokenService(db).RevokeAllUserTokens(ctx, user.ID); err != nil {
			log.Fatalf("Failed to revoke sessions: %v", err)
		}
	}

	fmt.Printf("User %s (%s) is now %s\n", user.Phone, user.ID, *status)
}
