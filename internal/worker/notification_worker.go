// Package worker starts background consumers of complaint events.
package worker

import (
	"go.uber.org/zap"

	"github.com/cityworks/complaint-service/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to complaint
// events. Dispatch is synchronous, so nothing runs until an event is published.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification worker started")
	}
}
