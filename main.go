package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/liftlog/workout-log/config"
	"github.com/liftlog/workout-log/controllers"
	"github.com/liftlog/workout-log/database"
	"github.com/liftlog/workout-log/middleware"
	"github.com/liftlog/workout-log/repositories"
	"github.com/liftlog/workout-log/services"
)

func main() {
	// Load environment variables from .env file, if one exists. Deployed
	// environments configure the process environment directly.
	_ = godotenv.Load()

	// Resolve configuration once at startup
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database pool
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Create schema if missing
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize services
	srvs, err := services.NewServices(repos)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Set up router
	r := setupRouter(ctrl, cfg.CORSOrigin)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		fmt.Printf("🚀 Workout log API starting on port %s\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Println("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, corsOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.CORS(corsOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"ok": true}`)
	})

	// Workout log routes
	r.Route("/api", func(api chi.Router) {
		api.Post("/workouts", ctrl.Workouts.Create)
		api.Get("/workouts", ctrl.Workouts.List)
		api.Put("/workouts/{id}", ctrl.Workouts.Update)
		api.Delete("/workouts/{id}", ctrl.Workouts.Delete)

		api.Get("/bests", ctrl.Workouts.PersonalBests)
		api.Get("/bests/{exercise}", ctrl.Workouts.History)
	})

	return r
}
