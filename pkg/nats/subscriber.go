package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"ai-transcript-notes-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Subscriber reads events back from the EVENTS stream with a durable consumer.
type Subscriber struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	durable string
	cc      jetstream.ConsumeContext
}

func NewSubscriber(url, durable string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js, durable: durable}, nil
}

// Listen consumes every events.> subject until ctx is cancelled or Close is called.
func (s *Subscriber) Listen(ctx context.Context, handler events.Handler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       s.durable,
		FilterSubject: SubjectPrefix + ">",
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		var event events.BaseEvent
		if err := json.Unmarshal(msg.Data(), &event); err != nil {
			log.Printf("[WARN] Dropping undecodable event on %s: %v", msg.Subject(), err)
			_ = msg.Term()
			return
		}
		if event.Type == "" {
			event.Type = strings.TrimPrefix(msg.Subject(), SubjectPrefix)
		}

		if err := handler(ctx, event); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	s.cc = cc

	go func() {
		<-ctx.Done()
		cc.Stop()
	}()
	return nil
}

func (s *Subscriber) Close() error {
	if s.cc != nil {
		s.cc.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
	return nil
}
