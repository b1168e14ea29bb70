// Package kafka consumes render requests from a Kafka topic as an
// alternative intake to the HTTP API.
package kafka

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/IBM/sarama"

	"reelforge/config"
)

// MessageHandler processes one consumed message. Returning shouldMark
// false or an error leaves the offset unmarked so the message is retried.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) (shouldMark bool, err error)
}

// Consumer wraps a sarama consumer group around a pluggable handler.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler MessageHandler
	topic   string
	groupID string
	ready   chan bool
}

// ConsumerConfig holds Kafka consumer configuration.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
}

// ConsumerConfigFromEnv reads broker, topic and group settings from the
// environment with local-dev defaults.
func ConsumerConfigFromEnv(handler MessageHandler) ConsumerConfig {
	brokers := strings.Split(config.GetEnvOrDefault("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"), ",")
	return ConsumerConfig{
		Brokers: brokers,
		Topic:   config.GetEnvOrDefault("KAFKA_RENDER_TOPIC", "render-requests"),
		GroupID: config.GetEnvOrDefault("KAFKA_GROUP_ID", "reelforge-renderers"),
		Handler: handler,
	}
}

func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		handler: cfg.Handler,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		ready:   make(chan bool),
	}, nil
}

// Start begins consuming in the background and returns once the first
// session is established.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{
		messageHandler: c.handler,
		ready:          c.ready,
	}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if err == context.Canceled {
					log.Println("kafka consumer context canceled")
					return
				}
				log.Printf("kafka consumer error: %v", err)
			}

			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	<-c.ready
	log.Printf("kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("kafka consumer error: %v", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the consumer group.
func (c *Consumer) Close() error {
	log.Println("closing kafka consumer")
	return c.group.Close()
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler.
type consumerGroupHandler struct {
	messageHandler MessageHandler
	ready          chan bool
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			log.Printf("received kafka message: partition=%d, offset=%d, key=%s",
				message.Partition, message.Offset, string(message.Key))

			shouldMark, err := h.messageHandler.HandleMessage(session.Context(), message.Value)
			if err != nil {
				log.Printf("failed to handle message: %v", err)
			}
			if shouldMark {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// TypedMessageHandler decodes the message payload into T before handing
// it to Process. Undecodable or invalid messages are marked only when
// AlwaysMark is set.
type TypedMessageHandler[T any] struct {
	Validate   func(msg *T) bool
	Process    func(ctx context.Context, msg *T) error
	AlwaysMark bool
}

func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("failed to unmarshal message: %v", err)
		return h.AlwaysMark, nil
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}

	if err := h.Process(ctx, &msg); err != nil {
		return false, err
	}
	return true, nil
}
