package mocks

import (
	"context"

	"github.com/cinetick/cinetick/internal/notifier"
	"github.com/stretchr/testify/mock"
)

var _ notifier.Notifier = (*MockNotifier)(nil)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingConfirmed(ctx context.Context, e notifier.BookingConfirmed) {
	m.Called(ctx, e)
}

func (m *MockNotifier) BookingCancelled(ctx context.Context, e notifier.BookingCancelled) {
	m.Called(ctx, e)
}
