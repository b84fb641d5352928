package events

import "context"

// Handler processes one delivered event. A non-nil error asks the bus to redeliver.
type Handler func(ctx context.Context, event BaseEvent) error

// Listen consumes Topic until ctx is cancelled, acking handled events and nacking failures.
// Undecodable messages are acked and dropped.
func (b *GoChannelBus) Listen(ctx context.Context, handler Handler) error {
	ch, err := b.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range ch {
			event, err := Decode(msg)
			if err != nil {
				msg.Ack()
				continue
			}
			if err := handler(msg.Context(), event); err != nil {
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}()
	return nil
}
