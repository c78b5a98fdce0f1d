package kafka

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler must return nil only when processing succeeded and the offset may
// be committed.
type Handler func(ctx context.Context, m kafka.Message) error

type Consumer struct {
	r       *kafka.Reader
	workers int
	backoff time.Duration
	commit  func(ctx context.Context, msgs ...kafka.Message) error
}

func NewConsumer(brokers []string, group, topic string, workers int) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commit
	})
	if workers <= 0 {
		workers = 1
	}
	return &Consumer{r: r, workers: workers, backoff: 200 * time.Millisecond, commit: r.CommitMessages}
}

func (c *Consumer) Start(ctx context.Context, h Handler) error {
	defer c.r.Close()

	jobs := make(chan kafka.Message, 1024)
	for i := 0; i < c.workers; i++ {
		go c.work(ctx, jobs, h)
	}

	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			close(jobs)
			// quiet exit on shutdown
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		select {
		case jobs <- m:
		case <-ctx.Done():
			close(jobs)
			return nil
		}
	}
}

// work processes jobs until the channel closes. Errors are logged right
// here with a light backoff, so a failing handler never blocks the other
// workers or the dispatcher.
func (c *Consumer) work(ctx context.Context, jobs <-chan kafka.Message, h Handler) {
	for m := range jobs {
		if err := h(ctx, m); err != nil {
			log.Printf("kafka: handler: %v", err)
			time.Sleep(c.backoff)
			continue
		}
		if err := c.commit(ctx, m); err != nil {
			log.Printf("kafka: commit: %v", err)
		}
	}
}
