package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rehearse-io/rehearse-server/internal/config"
	"github.com/rehearse-io/rehearse-server/internal/domain"
	"github.com/rehearse-io/rehearse-server/internal/repository"
	"github.com/rehearse-io/rehearse-server/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const presignExpiry = 15 * time.Minute

// allowedContentTypes mirrors what the onboarding wizard captures per step:
// a resume document, a canvas photo and a MediaRecorder audio clip.
var allowedContentTypes = map[domain.ArtifactKind]map[string]bool{
	domain.ArtifactResume: {
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	},
	domain.ArtifactPhoto: {
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	domain.ArtifactVoice: {
		"audio/webm": true,
		"audio/ogg":  true,
		"audio/wav":  true,
		"audio/mpeg": true,
	},
}

type OnboardingService struct {
	artifactRepo repository.ArtifactRepository
	store        storage.ObjectStore
	cfg          *config.Config
}

func NewOnboardingService(artifactRepo repository.ArtifactRepository, store storage.ObjectStore, cfg *config.Config) *OnboardingService {
	return &OnboardingService{
		artifactRepo: artifactRepo,
		store:        store,
		cfg:          cfg,
	}
}

type ArtifactUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type OnboardingStatus struct {
	Resume   bool `json:"resume"`
	Photo    bool `json:"photo"`
	Voice    bool `json:"voice"`
	Complete bool `json:"complete"`
}

type ArtifactDownload struct {
	Artifact    *domain.OnboardingArtifact
	DownloadURL string
}

func (s *OnboardingService) UploadArtifact(ctx context.Context, userID uuid.UUID, kind domain.ArtifactKind, upload ArtifactUpload) (*domain.OnboardingArtifact, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidArtifactKind
	}
	if !allowedContentTypes[kind][upload.ContentType] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, upload.ContentType)
	}
	if upload.Size > s.cfg.MaxUploadBytes {
		return nil, domain.ErrFileTooLarge
	}

	previous, err := s.artifactRepo.GetByUserAndKind(ctx, userID, kind)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	objectKey := path.Join("onboarding", userID.String(), string(kind), uuid.New().String())
	if err := s.store.Put(ctx, objectKey, upload.ContentType, upload.Body, upload.Size); err != nil {
		return nil, fmt.Errorf("store artifact: %w", err)
	}

	metadata, err := json.Marshal(map[string]interface{}{
		"contentType": upload.ContentType,
		"size":        upload.Size,
	})
	if err != nil {
		return nil, err
	}

	artifact := &domain.OnboardingArtifact{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		ObjectKey: objectKey,
		FileName:  upload.FileName,
		Metadata:  datatypes.JSON(metadata),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.artifactRepo.Upsert(ctx, artifact); err != nil {
		return nil, err
	}

	// The row now points at the new object; drop the superseded blob. A
	// failed delete only orphans storage, never the request.
	if previous != nil && previous.ObjectKey != artifact.ObjectKey {
		if err := s.store.Delete(ctx, previous.ObjectKey); err != nil {
			log.Printf("ERROR [service.UploadArtifact] delete superseded %s object: %v", kind, err)
		}
	}

	return artifact, nil
}

func (s *OnboardingService) Status(ctx context.Context, userID uuid.UUID) (*OnboardingStatus, error) {
	artifacts, err := s.artifactRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &OnboardingStatus{}
	for _, a := range artifacts {
		switch a.Kind {
		case domain.ArtifactResume:
			status.Resume = true
		case domain.ArtifactPhoto:
			status.Photo = true
		case domain.ArtifactVoice:
			status.Voice = true
		}
	}
	status.Complete = status.Resume && status.Photo && status.Voice

	return status, nil
}

func (s *OnboardingService) ListArtifacts(ctx context.Context, userID uuid.UUID) ([]*ArtifactDownload, error) {
	artifacts, err := s.artifactRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	downloads := make([]*ArtifactDownload, 0, len(artifacts))
	for _, a := range artifacts {
		url, err := s.store.PresignGet(ctx, a.ObjectKey, presignExpiry)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", a.Kind, err)
		}
		downloads = append(downloads, &ArtifactDownload{Artifact: a, DownloadURL: url})
	}

	return downloads, nil
}

func (s *OnboardingService) GetArtifact(ctx context.Context, userID uuid.UUID, kind domain.ArtifactKind) (*domain.OnboardingArtifact, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidArtifactKind
	}
	artifact, err := s.artifactRepo.GetByUserAndKind(ctx, userID, kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, err
	}
	return artifact, nil
}
