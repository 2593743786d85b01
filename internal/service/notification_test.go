package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
	"eventhub-backend/internal/service"
)

func TestGetNotifications_NormalizesPaging(t *testing.T) {
	repo := &MockNotificationRepo{}
	svc := service.NewNotificationService(repo)
	ctx := context.Background()

	repo.On("List", ctx, int32(20), int32(20), int32(0)).
		Return([]domain.Notification{{ID: 1, UserID: 20}}, int32(1), nil)

	// Page 0 and an oversized page size fall back to the defaults.
	items, total, err := svc.GetNotifications(ctx, 20, 0, 500)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int32(1), total)
}

func TestGetNotifications_OffsetFromPage(t *testing.T) {
	repo := &MockNotificationRepo{}
	svc := service.NewNotificationService(repo)
	ctx := context.Background()

	repo.On("List", ctx, int32(20), int32(10), int32(20)).
		Return([]domain.Notification{}, int32(35), nil)

	_, total, err := svc.GetNotifications(ctx, 20, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(35), total)
	repo.AssertExpectations(t)
}

func TestMarkAsRead_UnknownNotification(t *testing.T) {
	repo := &MockNotificationRepo{}
	svc := service.NewNotificationService(repo)
	ctx := context.Background()

	repo.On("MarkAsRead", ctx, int32(99), int32(20)).Return(repository.ErrNotFound)

	err := svc.MarkAsRead(ctx, 20, 99)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidArgument))
}
