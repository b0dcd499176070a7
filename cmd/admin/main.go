package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"smartspend/internal/domain/notification"
	"smartspend/internal/domain/user"
	"smartspend/internal/infrastructure/firebase"
	"smartspend/internal/infrastructure/postgres"
	"smartspend/internal/scheduler"
	"smartspend/internal/shared/config"
)

const usage = `SmartSpend Admin CLI - Management commands for the SmartSpend API

Usage:
  admin <command> [options]

Commands:
  send-reminders   Send bill and warranty reminders immediately

Examples:
  # Send reminders to a specific user
  admin send-reminders --user-id=1

  # Send reminders to multiple users
  admin send-reminders --user-id=1,2,3

  # Send reminders to all users
  admin send-reminders --all

  # Preview without pushing (messages are logged, not sent)
  admin send-reminders --all --dry-run

  # Run with timeout
  admin send-reminders --user-id=1 --timeout=5m
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "send-reminders":
		runSendReminders(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func runSendReminders(args []string) {
	fs := flag.NewFlagSet("send-reminders", flag.ExitOnError)

	userIDStr := fs.String("user-id", "", "User ID(s) to notify (comma-separated for multiple)")
	allUsers := fs.Bool("all", false, "Notify all users")
	dryRun := fs.Bool("dry-run", false, "Log messages instead of pushing them")
	timeoutStr := fs.String("timeout", "10m", "Timeout for the operation (e.g., 5m, 1h)")

	fs.Usage = func() {
		fmt.Println("Usage: admin send-reminders [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin send-reminders --user-id=1")
		fmt.Println("  admin send-reminders --user-id=1,2,3")
		fmt.Println("  admin send-reminders --all")
		fmt.Println("  admin send-reminders --all --dry-run")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *userIDStr == "" && !*allUsers {
		fmt.Println("Error: must specify --user-id or --all")
		fs.Usage()
		os.Exit(1)
	}

	// Parse timeout
	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	billRepo := postgres.NewBillRepository(db)
	warrantyRepo := postgres.NewWarrantyRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Initialize push messaging
	var messenger notification.Messenger
	if *dryRun || cfg.Firebase.CredentialsFile == "" {
		messenger = dryRunMessenger{}
		log.Println("Dry run: push messages will be logged, not sent")
	} else {
		fcm, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		messenger = fcm
	}

	notifier := notification.NewService(notificationRepo, messenger)

	var userIDs []int64

	if *allUsers {
		userIDs, err = userRepo.ListIDs(ctx)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		log.Printf("Found %d users", len(userIDs))
	} else {
		// Parse user IDs from comma-separated string
		parts := strings.Split(*userIDStr, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			id, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				log.Fatalf("Invalid user ID '%s': %v", p, err)
			}
			userIDs = append(userIDs, id)
		}
	}

	if len(userIDs) == 0 {
		log.Println("No users to process")
		return
	}

	log.Printf("Sending reminders for %d user(s)", len(userIDs))
	startTime := time.Now()

	failed := 0
	for _, id := range userIDs {
		leadDays := user.DefaultPreferences().ReminderLeadDays
		if u, err := userRepo.GetByID(ctx, id); err == nil && u != nil {
			leadDays = u.Preferences.ReminderLeadDays
		}

		job := scheduler.NewUserReminderJob(id, leadDays, billRepo, warrantyRepo, notifier)
		if err := job.Execute(ctx); err != nil {
			log.Printf("User %d: %v", id, err)
			failed++
		}
	}

	elapsed := time.Since(startTime)
	log.Printf("Reminders completed in %v (%d user(s), %d failed)", elapsed, len(userIDs), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// dryRunMessenger logs push messages instead of sending them.
type dryRunMessenger struct{}

func (dryRunMessenger) Send(_ context.Context, token string, msg *notification.Message) error {
	log.Printf("Push (dry run) to %s: %s - %s", token, msg.Title, msg.Body)
	return nil
}

func (dryRunMessenger) SendMulticast(_ context.Context, tokens []string, msg *notification.Message) ([]string, error) {
	log.Printf("Push (dry run) to %d devices: %s - %s", len(tokens), msg.Title, msg.Body)
	return nil, nil
}
