package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic is the single in-process topic every event is published to.
const Topic = "notes.events"

// GoChannelBus is an in-process bus on top of watermill's gochannel pub/sub.
type GoChannelBus struct {
	pubSub *gochannel.GoChannel
}

func NewGoChannelBus(logger watermill.LoggerAdapter) *GoChannelBus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &GoChannelBus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger),
	}
}

func (b *GoChannelBus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(BaseEvent{
		ID:         event.EventID(),
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(event.EventID(), payload)
	msg.Metadata.Set("type", event.EventType())
	msg.SetContext(ctx)

	return b.pubSub.Publish(Topic, msg)
}

// Subscribe returns the raw message channel for Topic. Messages must be acked.
func (b *GoChannelBus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, Topic)
}

func (b *GoChannelBus) Close() error {
	return b.pubSub.Close()
}

// Decode turns a bus message back into an event.
func Decode(msg *message.Message) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}
	return e, nil
}
