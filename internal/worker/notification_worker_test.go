package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cityworks/complaint-service/internal/config"
	"github.com/cityworks/complaint-service/internal/events"
	"github.com/cityworks/complaint-service/internal/service"
)

func TestStartNotificationWorkerSubscribesHandlers(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher(logger)

	StartNotificationWorker(service.NewNotificationService(dispatcher, logger, config.NotificationConfig{}), logger)
	require.Equal(t, 1, logs.FilterMessage("notification worker started").Len())

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: "CMPT-005",
	}))
	assert.Equal(t, 1, logs.FilterMessage("ComplaintCreated").Len())
}

func TestStartNotificationWorkerNilService(t *testing.T) {
	assert.NotPanics(t, func() { StartNotificationWorker(nil, zap.NewNop()) })
}
