package service

import (
	"context"
	"testing"
	"time"

	"ai-transcript-notes-be/internal/pkg/logger"
	"ai-transcript-notes-be/pkg/events"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(module, message string, details map[string]interface{}) {}

func (m *mockLogger) Info(module, message string, details map[string]interface{}) {
	m.Called(module, message, details)
}

func (m *mockLogger) Warn(module, message string, details map[string]interface{}) {}

func (m *mockLogger) Error(module, message string, details map[string]interface{}) {}

func (m *mockLogger) Sync() error { return nil }

func (m *mockLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

func (m *mockLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func TestActivityService_LogsBusEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewGoChannelBus(nil)
	defer bus.Close()

	logged := make(chan map[string]interface{}, 1)
	log := &mockLogger{}
	log.On("Info", "ACTIVITY", events.MessageCreated, mock.Anything).
		Run(func(args mock.Arguments) {
			logged <- args.Get(2).(map[string]interface{})
		}).
		Once()

	svc := NewActivityService(bus, log)
	require.NoError(t, svc.Start(ctx))

	event := events.New(events.MessageCreated, map[string]interface{}{"message_id": 7})
	require.NoError(t, bus.Publish(ctx, event))

	select {
	case details := <-logged:
		require.Equal(t, event.ID, details["event_id"])
		require.EqualValues(t, 7, details["message_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("event was not logged")
	}
	log.AssertExpectations(t)
}
