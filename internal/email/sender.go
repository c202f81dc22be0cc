package email

import (
	"context"
	"errors"
)

// Sender define la interfaz de notificaciones por correo del motor.
type Sender interface {
	SendMutualMatchNotice(ctx context.Context, toEmail string, partnerName string, explanation string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendMutualMatchNotice(_ context.Context, _ string, _ string, _ string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
