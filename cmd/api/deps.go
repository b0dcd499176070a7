package main

import (
	"context"
	"log"

	"smartspend/internal/domain/bill"
	"smartspend/internal/domain/notification"
	"smartspend/internal/infrastructure/firebase"
	"smartspend/internal/infrastructure/postgres"
	httphandlers "smartspend/internal/interfaces/http"
	"smartspend/internal/shared/auth"
	"smartspend/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	UserHandler         *httphandlers.UserHandler
	BillHandler         *httphandlers.BillHandler
	ExpenseHandler      *httphandlers.ExpenseHandler
	WarrantyHandler     *httphandlers.WarrantyHandler
	DashboardHandler    *httphandlers.DashboardHandler
	NotificationHandler *httphandlers.NotificationHandler

	// Auth
	JWT *auth.JWT

	// Repositories and services (for the scheduler job provider)
	UserRepo            *postgres.UserRepository
	BillRepo            *postgres.BillRepository
	WarrantyRepo        *postgres.WarrantyRepository
	NotificationService *notification.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	billRepo := postgres.NewBillRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	warrantyRepo := postgres.NewWarrantyRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Initialize domain services
	billService := bill.NewService(billRepo)

	// Initialize push messaging. Without Firebase credentials the
	// notification endpoints still work, pushes are only logged.
	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			return nil, err
		}
		messenger = fcm
		log.Println("Firebase messaging initialized")
	} else {
		messenger = logMessenger{}
		log.Println("Firebase credentials not configured, push messages will be logged only")
	}

	notificationService := notification.NewService(notificationRepo, messenger)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)
	googleOAuth := auth.NewGoogleOAuthProvider(
		cfg.OAuth.Google.ClientID,
		cfg.OAuth.Google.ClientSecret,
		cfg.OAuth.Google.CallbackURL,
	)

	// Initialize handlers
	authHandler := httphandlers.NewAuthHandler(userRepo, googleOAuth, jwt)
	userHandler := httphandlers.NewUserHandler(userRepo)
	billHandler := httphandlers.NewBillHandler(billService)
	expenseHandler := httphandlers.NewExpenseHandler(expenseRepo)
	warrantyHandler := httphandlers.NewWarrantyHandler(warrantyRepo)
	dashboardHandler := httphandlers.NewDashboardHandler(billService, expenseRepo, warrantyRepo)
	notificationHandler := httphandlers.NewNotificationHandler(notificationService)

	return &Dependencies{
		DB:                  db,
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		BillHandler:         billHandler,
		ExpenseHandler:      expenseHandler,
		WarrantyHandler:     warrantyHandler,
		DashboardHandler:    dashboardHandler,
		NotificationHandler: notificationHandler,
		JWT:                 jwt,
		UserRepo:            userRepo,
		BillRepo:            billRepo,
		WarrantyRepo:        warrantyRepo,
		NotificationService: notificationService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

// logMessenger is the fallback Messenger used when Firebase is not configured.
type logMessenger struct{}

func (logMessenger) Send(_ context.Context, token string, msg *notification.Message) error {
	log.Printf("Push (dry run) to %s: %s - %s", token, msg.Title, msg.Body)
	return nil
}

func (logMessenger) SendMulticast(_ context.Context, tokens []string, msg *notification.Message) ([]string, error) {
	log.Printf("Push (dry run) to %d devices: %s - %s", len(tokens), msg.Title, msg.Body)
	return nil, nil
}
