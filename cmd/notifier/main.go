// notifier tails the order event topic and writes customer-facing
// notification lines to the log. It runs out of process so the API itself
// stays free of background work.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/phuoctoan/shop-orders/internal/config"
	kafkax "github.com/phuoctoan/shop-orders/internal/kafka"
	"github.com/phuoctoan/shop-orders/internal/orders"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group := getenv("NOTIFIER_GROUP", "order-notifier")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), 4)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderEvents, workers)

	go func() {
		log.Printf("notifier started: group=%s topic=%s workers=%d", group, orders.TopicOrderEvents, workers)
		if err := cons.Start(ctx, handle); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down notifier...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func handle(_ context.Context, m kafkago.Message) error {
	var ev orders.Envelope
	if err := kafkax.Unmarshal(m.Value, &ev); err != nil {
		log.Printf("notifier: bad envelope, skipping: %v", err)
		return nil
	}

	switch ev.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](ev.Payload)
		if err != nil {
			return err
		}
		log.Printf("notify %s: order %s received, total %d", p.CustomerName, p.OrderCode, p.Total)
	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](ev.Payload)
		if err != nil {
			return err
		}
		log.Printf("notify: order %d is now %s", p.OrderID, p.StatusLabel)
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
