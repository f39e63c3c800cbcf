package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rehearse-io/rehearse-server/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ArtifactRepository interface {
	Upsert(ctx context.Context, artifact *domain.OnboardingArtifact) error
	GetByUserAndKind(ctx context.Context, userID uuid.UUID, kind domain.ArtifactKind) (*domain.OnboardingArtifact, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.OnboardingArtifact, error)
}

type Repositories struct {
	User     UserRepository
	Artifact ArtifactRepository
}
