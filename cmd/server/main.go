package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"food-rescue-service/internal/adapters/cache"
	"food-rescue-service/internal/adapters/notify"
	"food-rescue-service/internal/adapters/repositories"
	"food-rescue-service/internal/api"
	"food-rescue-service/internal/config"
	"food-rescue-service/internal/platform/db"
	"food-rescue-service/internal/ports"
	"food-rescue-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, RabbitMQ) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	if strings.TrimSpace(cfg.DB.URL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DB.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	regions := repositories.NewSQLRegionRepository(conn)
	stores := repositories.NewSQLStoreRepository(conn)
	banks := repositories.NewSQLBankRepository(conn)
	donations := repositories.NewSQLDonationRepository(conn)
	routes := repositories.NewSQLRouteRepository(conn)
	notifications := repositories.NewSQLNotificationRepository(conn)

	var planCache ports.PlanCache
	if cfg.Cache.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		defer client.Close()
		planCache = cache.NewRedisPlanCache(client, cfg.Cache.PlanTTL)
		log.Printf("plan cache enabled addr=%s ttl=%s", cfg.Cache.RedisAddr, cfg.Cache.PlanTTL)
	}

	var notifier ports.Notifier = notify.LogNotifier{}
	if cfg.Notify.AMQPURL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.Notify.AMQPURL, cfg.Notify.Queue)
		if err != nil {
			log.Fatal(err)
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
		log.Printf("amqp notifier enabled queue=%s", cfg.Notify.Queue)
	}

	planner := services.NewPlanner(stores, banks, planCache)
	workflow := services.NewWorkflow(routes, notifications, donations, stores, banks, notifier, cfg.Notify.SendTimeout)

	router := api.NewRouter(planner, workflow, regions, donations, routes)

	log.Printf("Server listening addr=:%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
