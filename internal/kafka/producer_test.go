package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospohub/internal/config"
)

// A canceled context makes SendMessage return before the delivery report
// arrives. The report still fires later (here as a timeout, since no broker
// is reachable) and must not take the process down.
func TestSendMessage_CanceledContextSurvivesLateDeliveryReport(t *testing.T) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  "localhost:1",
		"message.timeout.ms": 300,
	})
	require.NoError(t, err)
	defer p.Close()

	producer := &confluentKafkaProducer{producer: p, cfg: config.KafkaConfig{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = producer.SendMessage(ctx, "connection-events", []byte("key"), []byte("{}"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	// Wait past message.timeout.ms for the report to land.
	time.Sleep(600 * time.Millisecond)
}

func TestSendMessage_DeliveryFailureIsReturned(t *testing.T) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  "localhost:1",
		"message.timeout.ms": 300,
	})
	require.NoError(t, err)
	defer p.Close()

	producer := &confluentKafkaProducer{producer: p, cfg: config.KafkaConfig{}}

	err = producer.SendMessage(context.Background(), "connection-events", []byte("key"), []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery failed")
}
