package service

import (
	"context"
	"encoding/json"
	"time"

	"anoa.com/livestockhub/internal/modules/audit/dto"
	"github.com/segmentio/kafka-go"
)

// Publisher ships audit events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event dto.Event) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish keys messages by actor so one admin's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event dto.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ActorID.String()),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(event.Action)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, dto.Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
