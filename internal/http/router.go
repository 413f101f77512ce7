package http

import (
	"gametrack-backend/internal/handlers"
	"gametrack-backend/internal/middleware"

	"github.com/gorilla/mux"
)

func NewRouter(
	uploadHandler *handlers.UploadHandler,
	inventoryHandler *handlers.InventoryHandler,
	sellerHandler *handlers.SellerHandler,
	gameHandler *handlers.GameHandler,
	pickupHandler *handlers.PickupHandler,
	transportationHandler *handlers.TransportationHandler,
	depositHandler *handlers.DepositHandler,
	officeHandler *handlers.OfficeHandler,
	issueHandler *handlers.IssueHandler,
	dashboardHandler *handlers.DashboardHandler,
	signInHandler *handlers.SignInHandler,
	authHandler *handlers.AuthHandler,
	archiveHandler *handlers.ArchiveHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Health
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.Readiness).Methods("GET")

	// Operator auth + kiosk sign-in roster
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/signin", signInHandler.SignIn).Methods("POST")
	r.HandleFunc("/logs", signInHandler.Logs).Methods("GET")

	// Intake
	r.HandleFunc("/api/upload-dbf", uploadHandler.UploadDBF).Methods("POST")

	// Inventory + emergency relocation
	r.HandleFunc("/api/inventory/live", inventoryHandler.Live).Methods("GET")
	r.HandleFunc("/api/emergency/lookup", inventoryHandler.EmergencyLookup).Methods("POST")
	r.HandleFunc("/api/emergency/move", inventoryHandler.EmergencyMove).Methods("POST")

	// Per-location kiosk surface
	loc := r.PathPrefix("/api/location/{loc}").Subrouter()
	loc.HandleFunc("/open/check", sellerHandler.OpenCheck).Methods("POST")
	loc.HandleFunc("/open/confirm", sellerHandler.OpenConfirm).Methods("POST")
	loc.HandleFunc("/open/games", sellerHandler.OpenGames).Methods("GET")
	loc.HandleFunc("/close/check", sellerHandler.CloseCheck).Methods("POST")
	loc.HandleFunc("/close/confirm", sellerHandler.CloseConfirm).Methods("POST")
	loc.HandleFunc("/sell", sellerHandler.Sell).Methods("POST")
	loc.HandleFunc("/winner", sellerHandler.Winner).Methods("POST")

	// Cross-location game search
	r.HandleFunc("/api/game/find", gameHandler.Find).Methods("POST")

	// Pickup + transportation
	r.HandleFunc("/api/pickup/list", pickupHandler.List).Methods("GET")
	r.HandleFunc("/api/pickup/confirm", pickupHandler.Confirm).Methods("POST")
	r.HandleFunc("/api/transportation/live", transportationHandler.Live).Methods("GET")
	r.HandleFunc("/api/transportation/dropoff", transportationHandler.DropOff).Methods("POST")

	// Deposits
	r.HandleFunc("/api/deposit/list", depositHandler.List).Methods("GET")
	r.HandleFunc("/api/deposit/toBank", depositHandler.ToBank).Methods("POST")
	r.HandleFunc("/api/deposit/atBank", depositHandler.AtBank).Methods("POST")
	r.HandleFunc("/api/deposit/report", depositHandler.Report).Methods("GET")

	// Office intake scanning
	r.HandleFunc("/api/office/find", officeHandler.Find).Methods("POST")
	r.HandleFunc("/api/office/scan", officeHandler.Scan).Methods("POST")
	r.HandleFunc("/api/office/list", officeHandler.List).Methods("GET")

	// Issues
	r.HandleFunc("/api/issues/add", issueHandler.Add).Methods("POST")
	r.HandleFunc("/api/issues/list", issueHandler.List).Methods("GET")
	r.HandleFunc("/api/issues/fix", issueHandler.Fix).Methods("POST")

	// Dashboard
	r.HandleFunc("/api/dashboard/summary", dashboardHandler.Summary).Methods("GET")

	// Authenticated operator surface
	session := r.PathPrefix("/api/session").Subrouter()
	session.Use(authMiddleware.Authenticate)
	session.HandleFunc("/me", authHandler.Me).Methods("GET")

	archive := r.PathPrefix("/api/archive").Subrouter()
	archive.Use(authMiddleware.Authenticate)
	archive.HandleFunc("/export", archiveHandler.Export).Methods("POST")

	return r
}
