package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// Consumer interface defines the contract for consuming booking events
type Consumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
}

// ConsumerConfig contains configuration for the Kafka booking event consumer
type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	OffsetOldest     bool
}

// DefaultConsumerConfig returns a default consumer configuration
func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "cinebook-notifications",
		Topics:           []string{"booking-events"},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		OffsetOldest:     false,
	}
}

// EventHandler processes a consumed booking event. The default handler logs
// the event; email or push delivery plugs in here.
type EventHandler func(ctx context.Context, event *BookingEvent) error

// KafkaConsumer consumes booking events from Kafka via a consumer group
type KafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	handler       EventHandler
	cancel        context.CancelFunc
}

// NewKafkaConsumer creates a new Kafka booking event consumer
func NewKafkaConsumer(config *ConsumerConfig, handler EventHandler) (Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	if handler == nil {
		handler = LogEventHandler
	}

	return &KafkaConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		handler:       handler,
	}, nil
}

// StartConsumers starts the given number of consumer workers
func (kc *KafkaConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	ctx, kc.cancel = context.WithCancel(ctx)

	log.Printf("📥 Starting %d booking event consumer workers for topics: %v", numWorkers, kc.config.Topics)

	go kc.handleErrors()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			kc.runWorker(ctx, workerID)
		}(i)
	}

	return nil
}

func (kc *KafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &consumerGroupHandler{workerID: workerID, handler: kc.handler}

	for {
		select {
		case <-ctx.Done():
			log.Printf("📥 Worker %d shutting down", workerID)
			return
		default:
			if err := kc.consumerGroup.Consume(ctx, kc.config.Topics, handler); err != nil {
				log.Printf("📥 Worker %d error consuming messages: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (kc *KafkaConsumer) handleErrors() {
	for err := range kc.consumerGroup.Errors() {
		log.Printf("📥 Consumer group error: %v", err)
	}
}

// Stop shuts down the consumer group
func (kc *KafkaConsumer) Stop() error {
	log.Println("📥 Stopping booking event consumer...")
	if kc.cancel != nil {
		kc.cancel()
	}

	if err := kc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	log.Println("📥 Booking event consumer stopped")
	return nil
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	workerID int
	handler  EventHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var event BookingEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("📥 Worker %d skipping malformed event at offset %d: %v", h.workerID, message.Offset, err)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.handler(session.Context(), &event); err != nil {
			log.Printf("📥 Worker %d failed to handle event %s: %v", h.workerID, event.ID, err)
			// Marked anyway, handlers are best effort
		}
		session.MarkMessage(message, "")
	}
	return nil
}

// LogEventHandler is the default handler used when no delivery channel is
// configured
func LogEventHandler(ctx context.Context, event *BookingEvent) error {
	log.Printf("📥 Booking event received - Type: %s, Booking: %s, User: %s, Ticket: %s",
		event.Type, event.BookingID, event.UserID, event.TicketCode)
	return nil
}
