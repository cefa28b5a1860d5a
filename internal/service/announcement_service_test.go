package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

func TestAnnouncementListPagination(t *testing.T) {
	repo := &fakeAnnouncementRepo{
		rows:  []models.Announcement{{ID: 1, Title: "Enrollment week"}},
		total: 7,
	}
	svc := NewAnnouncementService(repo, zap.NewNop(), true)

	rows, pagination, err := svc.List(context.Background(), models.AnnouncementFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 7, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
}

func TestAnnouncementListDisabled(t *testing.T) {
	svc := NewAnnouncementService(&fakeAnnouncementRepo{}, zap.NewNop(), false)
	_, _, err := svc.List(context.Background(), models.AnnouncementFilter{})
	require.Error(t, err)
}
