package main

import (
	"context"
	"log"
	"os"

	"fooday/config"
	httpapi "fooday/internal/api/http"
	"fooday/internal/service"
	"fooday/internal/storage"
)

func main() {
	ctx := context.Background()

	var (
		users       service.UserRepository
		restaurants service.RestaurantRepository
		orders      service.OrderRepository
	)
	if os.Getenv("DB_HOST") != "" {
		db := config.MustInitPostgres()
		defer db.Close()

		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(); err != nil {
			log.Fatal("[fooday] schema init failed: ", err)
		}
		users, restaurants, orders = repo, repo, repo
		log.Println("[fooday] using postgres storage")
	} else {
		store := storage.NewMemoryStore()
		if err := storage.Seed(ctx, store); err != nil {
			log.Fatal("[fooday] seeding failed: ", err)
		}
		users, restaurants, orders = store, store, store
		log.Println("[fooday] DB_HOST not set, using seeded in-memory storage")
	}

	var sessions service.SessionStore
	if os.Getenv("REDIS_HOST") != "" {
		sessions = storage.NewRedisSessionStore(config.MustInitRedis(), config.SessionTTL())
		log.Println("[fooday] using redis sessions")
	} else {
		sessions = storage.NewMemorySessionStore()
		log.Println("[fooday] REDIS_HOST not set, using in-memory sessions")
	}

	var publisher service.OrderEventPublisher
	if os.Getenv("KAFKA_BROKER") != "" {
		writer := config.NewKafkaWriter("orders")
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
		log.Println("[fooday] publishing order events to kafka")
	}

	qr := service.DefaultQRGenerator{BaseURL: config.PublicBaseURL()}

	authSvc := service.NewAuthService(users, sessions)
	cartSvc := service.NewCartService(restaurants, sessions)
	orderSvc := service.NewOrderService(orders, restaurants, sessions, publisher, qr)
	statusSvc := service.NewStatusService(orders, publisher)
	restaurantSvc := service.NewRestaurantService(restaurants)

	handler := httpapi.NewHandler(authSvc, cartSvc, orderSvc, statusSvc, restaurantSvc, sessions)
	httpapi.StartServer(":"+config.Port(), httpapi.NewRouter(handler))
}
