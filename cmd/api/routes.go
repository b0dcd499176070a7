package main

import (
	"log"
	"net/http"

	httphandlers "smartspend/internal/interfaces/http"
	"smartspend/internal/shared/config"
	"smartspend/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)
	mux.HandleFunc("/api/auth/google", deps.AuthHandler.HandleGoogleToken)

	// Web OAuth
	mux.HandleFunc("/api/auth/oauth/url", deps.AuthHandler.HandleAuthURL)
	mux.HandleFunc("/api/auth/oauth/callback", deps.AuthHandler.HandleCallback)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/users/me", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleMe)))
	mux.Handle("/api/users/me/avatar", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleAvatar)))

	mux.Handle("/api/bills/", authMiddleware(http.HandlerFunc(deps.BillHandler.HandleBills)))
	mux.Handle("/api/bills/summary", authMiddleware(http.HandlerFunc(deps.BillHandler.HandleBillSummary)))
	mux.Handle("/api/bills/upcoming/reminders", authMiddleware(http.HandlerFunc(deps.BillHandler.HandleUpcomingReminders)))
	mux.Handle("/api/bills/{id}", authMiddleware(http.HandlerFunc(deps.BillHandler.HandleBillByID)))
	mux.Handle("/api/bills/{id}/pay", authMiddleware(http.HandlerFunc(deps.BillHandler.HandlePayBill)))

	mux.Handle("/api/expenses/", authMiddleware(http.HandlerFunc(deps.ExpenseHandler.HandleExpenses)))
	mux.Handle("/api/expenses/{id}", authMiddleware(http.HandlerFunc(deps.ExpenseHandler.HandleExpenseByID)))

	mux.Handle("/api/warranties/", authMiddleware(http.HandlerFunc(deps.WarrantyHandler.HandleWarranties)))
	mux.Handle("/api/warranties/expiring/soon", authMiddleware(http.HandlerFunc(deps.WarrantyHandler.HandleExpiringSoon)))
	mux.Handle("/api/warranties/{id}", authMiddleware(http.HandlerFunc(deps.WarrantyHandler.HandleWarrantyByID)))

	mux.Handle("/api/dashboard/summary", authMiddleware(http.HandlerFunc(deps.DashboardHandler.HandleSummary)))

	mux.Handle("/api/notifications/register-device", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleRegisterDevice)))
	mux.Handle("/api/notifications/preferences", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandlePreferences)))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	// Request tracing sits outermost so spans cover the whole chain
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
