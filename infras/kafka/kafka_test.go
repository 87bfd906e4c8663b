package kafka_test

import (
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging/infras/kafka"
)

type payload struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "room-1", Value: payload{ID: "r1", Count: 2}}

	out, err := msg.ToKafkaMessage("reservation-events")

	require.NoError(t, err)
	assert.Equal(t, "reservation-events", out.Topic)
	assert.Equal(t, []byte("room-1"), out.Key)
	assert.JSONEq(t, `{"id":"r1","count":2}`, string(out.Value))
}

func TestMessage_ToKafkaMessageInvalidValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("t")

	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	got, err := kafka.Decode[payload](kafkaGo.Message{Value: []byte(`{"id":"r9","count":4}`)})

	require.NoError(t, err)
	assert.Equal(t, payload{ID: "r9", Count: 4}, got)

	_, err = kafka.Decode[payload](kafkaGo.Message{Value: []byte(`not json`)})
	assert.Error(t, err)
}
