package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk/portal/internal/session"
)

type fakeRepo struct {
	photoCount int64
	photoBytes int64
	photoErr   error
	docCount   int64
	docErr     error
	members    int64
	membersErr error
}

func (f *fakeRepo) PhotoStats(context.Context, session.Identity) (int64, int64, error) {
	return f.photoCount, f.photoBytes, f.photoErr
}

func (f *fakeRepo) DocumentCount(context.Context, session.Identity) (int64, error) {
	return f.docCount, f.docErr
}

func (f *fakeRepo) MemberCount(context.Context, session.Identity) (int64, error) {
	return f.members, f.membersErr
}

func TestStats_Aggregates(t *testing.T) {
	svc := NewService(&fakeRepo{photoCount: 12, photoBytes: 4096, docCount: 3, members: 5})

	stats, err := svc.Stats(context.Background(), session.Identity{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, &Stats{PhotoCount: 12, DocumentCount: 3, MemberCount: 5, StorageBytes: 4096}, stats)
}

func TestStats_PropagatesErrors(t *testing.T) {
	boom := errors.New("db down")

	tests := []struct {
		name string
		repo *fakeRepo
	}{
		{"photo stats fail", &fakeRepo{photoErr: boom}},
		{"document count fails", &fakeRepo{docErr: boom}},
		{"member count fails", &fakeRepo{membersErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.repo).Stats(context.Background(), session.Identity{UserID: "u1"})
			assert.ErrorIs(t, err, boom)
		})
	}
}
