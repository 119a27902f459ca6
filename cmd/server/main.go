package main // Entry point package

import (
	"context"   // shutdown and load deadlines
	"log"       // Logging library
	"os"        // signal plumbing
	"os/signal" // SIGINT/SIGTERM handling
	"syscall"   // signal constants
	"time"      // shutdown timeouts

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/hotel-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/hotel-reservation/internal/database"   // MySQL connection + schema
	"github.com/iliyamo/hotel-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/hotel-reservation/internal/middleware" // rate limiting + response cache
	"github.com/iliyamo/hotel-reservation/internal/queue"      // broker consumer
	"github.com/iliyamo/hotel-reservation/internal/repository" // persistence collaborators
	"github.com/iliyamo/hotel-reservation/internal/router"     // Internal router setup
	queue_publisher "github.com/iliyamo/hotel-reservation/internal/service"
	"github.com/iliyamo/hotel-reservation/internal/store" // in-memory booking desk
)

func main() {
	// Load .env if present; in containers the variables come from the
	// environment so a missing file is not an error.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// Open MySQL and make sure the tables exist.  The database is only a
	// durable snapshot: all reads and writes during normal operation go to
	// the in-memory desk below.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer func() { _ = db.Close() }()

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelLoad()
	if err := database.EnsureSchema(loadCtx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	roomRepo := repository.NewRoomRepo(db)
	guestRepo := repository.NewGuestRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	rooms, err := roomRepo.LoadAll(loadCtx)
	if err != nil {
		log.Fatalf("load rooms: %v", err)
	}
	guests, err := guestRepo.LoadAll(loadCtx)
	if err != nil {
		log.Fatalf("load guests: %v", err)
	}
	reservations, err := reservationRepo.LoadAll(loadCtx)
	if err != nil {
		log.Fatalf("load reservations: %v", err)
	}

	// The desk owns all hotel state from here on: id counters are reseeded
	// from the loaded records and room occupancy is recomputed for today.
	desk := store.NewDesk(nil)
	desk.Load(rooms, guests, reservations)
	log.Printf("desk loaded: %d rooms, %d guests, %d reservations", len(rooms), len(guests), len(reservations))

	// Start the broker consumer in the background.  It reconnects on its
	// own and never takes the API down with it.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	e.HideBanner = true

	// Redis-backed rate limiting and listing caching.  All of these pass
	// through when Redis is unreachable.  The cache itself is mounted per
	// GET route below; the invalidator runs globally so any successful
	// mutation drops the cached listings before their TTL expires.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewCacheInvalidator(cacheCfg, rdb))
	listingCache := middleware.NewRedisCache(cacheCfg, rdb)

	roomHandler := handler.NewRoomHandler(desk)
	guestHandler := handler.NewGuestHandler(desk)
	reservationHandler := handler.NewReservationHandler(desk)
	reservationHandler.PublishBooked = queue_publisher.PublishReservationBooked
	reservationHandler.PublishCancelled = queue_publisher.PublishReservationCancelled

	router.RegisterRoutes(e) // Register application routes
	router.RegisterRooms(e, roomHandler, listingCache)
	router.RegisterGuests(e, guestHandler, listingCache)
	router.RegisterReservations(e, reservationHandler, listingCache)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil { // Start HTTP server
			log.Printf("http server stopped: %v", err)
		}
	}()

	// Block until asked to stop, then persist the desk and exit.  The
	// snapshot replaces the stored rows wholesale inside one transaction,
	// so a crash during save never leaves half a hotel behind.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}

	snapRooms, snapGuests, snapReservations := desk.Snapshot()
	if err := repository.SaveSnapshot(shutdownCtx, db, snapRooms, snapGuests, snapReservations); err != nil {
		log.Printf("save snapshot: %v", err)
	} else {
		log.Printf("snapshot saved: %d rooms, %d guests, %d reservations", len(snapRooms), len(snapGuests), len(snapReservations))
	}
}
