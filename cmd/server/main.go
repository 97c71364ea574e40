package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"

	"github.com/yamensam88/vitrio/internal/api"
	"github.com/yamensam88/vitrio/internal/auth"
	"github.com/yamensam88/vitrio/internal/repository"
	"github.com/yamensam88/vitrio/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	garageRepo := repository.NewGarageRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	adminGarageRepo := repository.NewAdminGarageRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)
	jobRepo := repository.NewJobRepository(db)

	senderService := service.NewSenderService()
	billingService := service.NewBillingService(appointmentRepo, adminGarageRepo)
	searchService := service.NewSearchService(garageRepo)
	bookingService := service.NewBookingService(appointmentRepo, garageRepo, availabilityRepo, senderService, billingService)
	partnerService := service.NewPartnerService(garageRepo, appointmentRepo, availabilityRepo)
	adminService := service.NewAdminService(adminGarageRepo, garageRepo, appointmentRepo, senderService)
	adminAuthService := service.NewAdminAuthService(adminAuthRepo)
	jobService := service.NewJobService(jobRepo)

	searchHandler := api.NewSearchHandler(searchService)
	bookingHandler := api.NewBookingHandler(bookingService)
	partnerHandler := api.NewPartnerHandler(partnerService, bookingService)
	adminHandler := api.NewAdminHandler(adminService)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthService)
	webhookHandler := api.NewBillingWebhookHandler(os.Getenv("STRIPE_WEBHOOK_SECRET"), billingService)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/search", searchHandler.SearchGarages).Methods("POST")
	r.HandleFunc("/api/garages/{id}/slots", bookingHandler.GetSlotGrid).Methods("GET")
	r.HandleFunc("/api/appointments", bookingHandler.CreateAppointment).Methods("POST")
	r.HandleFunc("/api/partner/register", adminHandler.Register).Methods("POST")
	r.HandleFunc("/api/partner/login", partnerHandler.Login).Methods("POST")
	r.HandleFunc("/api/webhooks/stripe", webhookHandler.HandleWebhook).Methods("POST")

	// Partner endpoints (protected)
	partner := r.PathPrefix("/api/partner").Subrouter()
	partner.Use(auth.PartnerAuthMiddleware)
	partner.HandleFunc("/appointments", partnerHandler.ListAppointments).Methods("GET")
	partner.HandleFunc("/appointments/{id}/status", partnerHandler.UpdateAppointmentStatus).Methods("PUT")
	partner.HandleFunc("/stats", partnerHandler.GetStats).Methods("GET")
	partner.HandleFunc("/slots", partnerHandler.GetSlotGrid).Methods("GET")
	partner.HandleFunc("/availabilities", partnerHandler.OpenSlot).Methods("POST")
	partner.HandleFunc("/availabilities/{id}", partnerHandler.CloseSlot).Methods("DELETE")

	// Admin endpoints (protected)
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/garages", adminHandler.ListGarages).Methods("GET")
	admin.HandleFunc("/garages/{id}/status", adminHandler.UpdateGarageStatus).Methods("PUT")
	admin.HandleFunc("/garages/{id}/access-code", adminHandler.GenerateAccessCode).Methods("POST")
	admin.HandleFunc("/appointments", adminHandler.ListAppointments).Methods("GET")
	admin.HandleFunc("/stats", adminHandler.GetStats).Methods("GET")
	admin.HandleFunc("/users", adminAuthHandler.CreateUserAdmin).Methods("POST")

	// Hourly sweep moving confirmed appointments past their slot to completed.
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		if err := jobService.CompleteElapsedAppointments(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule cron job: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("FRONTEND_ORIGIN")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler(r)))
}
