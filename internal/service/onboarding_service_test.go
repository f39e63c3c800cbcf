package service_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rehearse-io/rehearse-server/internal/domain"
	"github.com/rehearse-io/rehearse-server/internal/repository/postgres"
	"github.com/rehearse-io/rehearse-server/internal/service"
	"github.com/rehearse-io/rehearse-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingService_UploadArtifact(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	store := testutil.NewMemStore()
	svc := service.NewOnboardingService(repos.Artifact, store, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tests := []struct {
		name    string
		kind    domain.ArtifactKind
		upload  service.ArtifactUpload
		wantErr error
	}{
		{
			name: "resume pdf",
			kind: domain.ArtifactResume,
			upload: service.ArtifactUpload{
				FileName:    "resume.pdf",
				ContentType: "application/pdf",
				Size:        20,
				Body:        strings.NewReader("%PDF-1.4 fake resume"),
			},
		},
		{
			name: "invalid kind",
			kind: domain.ArtifactKind("video"),
			upload: service.ArtifactUpload{
				FileName:    "clip.mp4",
				ContentType: "video/mp4",
				Size:        4,
				Body:        strings.NewReader("data"),
			},
			wantErr: domain.ErrInvalidArtifactKind,
		},
		{
			name: "wrong content type for kind",
			kind: domain.ArtifactPhoto,
			upload: service.ArtifactUpload{
				FileName:    "photo.pdf",
				ContentType: "application/pdf",
				Size:        4,
				Body:        strings.NewReader("%PDF"),
			},
			wantErr: domain.ErrUnsupportedFileType,
		},
		{
			name: "over size cap",
			kind: domain.ArtifactResume,
			upload: service.ArtifactUpload{
				FileName:    "huge.pdf",
				ContentType: "application/pdf",
				Size:        cfg.MaxUploadBytes + 1,
				Body:        bytes.NewReader(nil),
			},
			wantErr: domain.ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact, err := svc.UploadArtifact(ctx, user.ID, tt.kind, tt.upload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.kind, artifact.Kind)
			assert.Equal(t, tt.upload.FileName, artifact.FileName)

			data, contentType, ok := store.Get(artifact.ObjectKey)
			require.True(t, ok, "blob missing from object store")
			assert.Equal(t, tt.upload.ContentType, contentType)
			assert.Len(t, data, int(tt.upload.Size))
		})
	}
}

func TestOnboardingService_UploadArtifact_ReplacesPrevious(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	store := testutil.NewMemStore()
	svc := service.NewOnboardingService(repos.Artifact, store, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	first, err := svc.UploadArtifact(ctx, user.ID, domain.ArtifactResume, service.ArtifactUpload{
		FileName:    "v1.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Body:        strings.NewReader("%PDF"),
	})
	require.NoError(t, err)

	_, err = svc.UploadArtifact(ctx, user.ID, domain.ArtifactResume, service.ArtifactUpload{
		FileName:    "v2.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Body:        strings.NewReader("%PDF"),
	})
	require.NoError(t, err)

	current, err := svc.GetArtifact(ctx, user.ID, domain.ArtifactResume)
	require.NoError(t, err)
	assert.Equal(t, "v2.pdf", current.FileName)
	assert.NotEqual(t, first.ObjectKey, current.ObjectKey)

	// The returned artifact carries the persisted row's id across the
	// replace, and the superseded blob is gone from the store.
	assert.Equal(t, first.ID, current.ID)
	_, _, ok := store.Get(first.ObjectKey)
	assert.False(t, ok, "superseded object should be deleted")
	assert.Equal(t, 1, store.Len())

	var count int64
	require.NoError(t, testDB.DB.Table("onboarding_artifacts").
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOnboardingService_Status(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	store := testutil.NewMemStore()
	svc := service.NewOnboardingService(repos.Artifact, store, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	status, err := svc.Status(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, status.Resume)
	assert.False(t, status.Complete)

	uploads := []struct {
		kind        domain.ArtifactKind
		contentType string
	}{
		{domain.ArtifactResume, "application/pdf"},
		{domain.ArtifactPhoto, "image/png"},
		{domain.ArtifactVoice, "audio/webm"},
	}
	for _, u := range uploads {
		_, err := svc.UploadArtifact(ctx, user.ID, u.kind, service.ArtifactUpload{
			FileName:    "file",
			ContentType: u.contentType,
			Size:        4,
			Body:        strings.NewReader("data"),
		})
		require.NoError(t, err)
	}

	status, err = svc.Status(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, status.Resume)
	assert.True(t, status.Photo)
	assert.True(t, status.Voice)
	assert.True(t, status.Complete)
}

func TestOnboardingService_GetArtifact_NotFound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	store := testutil.NewMemStore()
	svc := service.NewOnboardingService(repos.Artifact, store, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	_, err := svc.GetArtifact(ctx, user.ID, domain.ArtifactVoice)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}
