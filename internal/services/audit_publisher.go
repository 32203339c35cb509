package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/riskforge/payrisk/configs"
	"github.com/riskforge/payrisk/internal/views"
	kafkautils "github.com/riskforge/payrisk/pkg/kafka"
	"github.com/riskforge/payrisk/pkg/utils"
	"go.uber.org/zap"
)

// AuditPublisher emits prediction events for downstream audit consumers.
type AuditPublisher interface {
	PublishPrediction(event views.PredictionEvent) error
	Close()
}

type KafkaAuditPublisher struct {
	logger   *zap.Logger
	producer *kafka.Producer
	topic    string
}

// NewAuditPublisher creates the Kafka-backed publisher. With no brokers
// configured it degrades to a no-op so the API can run without Kafka.
func NewAuditPublisher(logger *zap.Logger, ctx context.Context, cnf *configs.Config) (AuditPublisher, error) {
	if utils.IsEmpty(cnf.KafkaBrokers) {
		logger.Info("prediction audit publishing disabled")
		return NoopAuditPublisher{}, nil
	}

	// Ensure the audit topic exists before producing
	topicConfig := kafkautils.KafkaConfig{
		BootstrapServers: cnf.KafkaBrokers,
		Topics: []kafkautils.TopicConfig{
			{
				Topic:             cnf.KafkaTopic,
				NumPartitions:     1,
				ReplicationFactor: 1,
				Config: map[string]string{
					"cleanup.policy": "delete",
				},
			},
		},
	}
	if err := kafkautils.InitKafkaTopics(logger, ctx, topicConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize kafka topics: %w", err)
	}

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  cnf.KafkaBrokers, // Kafka broker(s)
		"acks":               "all",            // Wait for all replicas
		"enable.idempotence": "true",           // Ensure messages are not sent twice
		"retries":            "1",              // Built-in retry mechanism
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	logger.Info("kafka producer created successfully", zap.String("brokers", cnf.KafkaBrokers))
	go handleDeliveryReports(logger, p) // Async error handling
	return &KafkaAuditPublisher{logger: logger, producer: p, topic: cnf.KafkaTopic}, nil
}

func (k *KafkaAuditPublisher) PublishPrediction(event views.PredictionEvent) error {
	// Serialize the event payload to JSON for Kafka transport
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Produce asynchronously; delivery results are handled by handleDeliveryReports
	return k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &k.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(event.EventID),
		Value: msgBytes,
	}, nil)
}

func (k *KafkaAuditPublisher) Close() {
	k.producer.Close()
}

func handleDeliveryReports(logger *zap.Logger, p *kafka.Producer) {
	for e := range p.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				logger.Error("failed to publish prediction event", zap.Error(ev.TopicPartition.Error))
			}
		}
	}
}

// NoopAuditPublisher is used when Kafka is not configured.
type NoopAuditPublisher struct{}

func (NoopAuditPublisher) PublishPrediction(views.PredictionEvent) error { return nil }

func (NoopAuditPublisher) Close() {}
