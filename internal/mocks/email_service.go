package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *EmailService) SendSwapRequestEmail(ctx context.Context, toEmail, recipientName, subject, message, actionPath string) error {
	args := m.Called(ctx, toEmail, recipientName, subject, message, actionPath)
	return args.Error(0)
}

func (m *EmailService) SendSwapStatusEmail(ctx context.Context, toEmail, recipientName, subject, status, message, actionPath string) error {
	args := m.Called(ctx, toEmail, recipientName, subject, status, message, actionPath)
	return args.Error(0)
}
