package sinkswitch

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// Notifier provides generic notification sending
type Notifier interface {
	Notify(title string, message string)
}

// ToastNotifier provides toast notifications through the desktop's notification daemon
type ToastNotifier struct {
	logger *zap.SugaredLogger
}

// NewToastNotifier creates a new ToastNotifier
func NewToastNotifier(logger *zap.SugaredLogger) (*ToastNotifier, error) {
	logger = logger.Named("notifier")
	tn := &ToastNotifier{logger: logger}

	logger.Debug("Created toast notifier instance")

	return tn, nil
}

// Notify sends a toast notification. Failing to do so is logged and otherwise ignored
func (tn *ToastNotifier) Notify(title string, message string) {
	tn.logger.Infow("Sending toast notification", "title", title, "message", message)

	if err := beeep.Notify(title, message, ""); err != nil {
		tn.logger.Warnw("Failed to send toast notification", "error", err)
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}
