package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/phuoctoan/shop-orders/internal/cart"
	"github.com/phuoctoan/shop-orders/internal/catalog"
	"github.com/phuoctoan/shop-orders/internal/config"
	"github.com/phuoctoan/shop-orders/internal/httpx"
	kafkax "github.com/phuoctoan/shop-orders/internal/kafka"
	"github.com/phuoctoan/shop-orders/internal/orders"
	"github.com/phuoctoan/shop-orders/internal/postgres"
	"github.com/phuoctoan/shop-orders/internal/redisx"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply the database schema on startup")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if *migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		log.Println("schema applied")
	}

	// Redis (cart sessions)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for order events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024)
	prod.Start(ctx)

	// Wiring
	carts := cart.NewStore(
		&cart.RedisSessions{Client: rdb, TTL: cfg.CartTTL},
		&catalog.Repo{DB: db},
	)
	svc := orders.NewService(&orders.Repo{DB: db}, carts)

	router := httpx.NewRouter()
	(&httpx.CartHandler{Carts: carts}).Register(router)
	(&httpx.OrdersHandler{Service: svc, Producer: prod, Name: cfg.ServiceName}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()
	cancel()
	prod.WaitClosed()
}
