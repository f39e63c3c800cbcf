package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/rehearse-io/rehearse-server/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type artifactRepository struct {
	db *gorm.DB
}

func NewArtifactRepository(db *gorm.DB) *artifactRepository {
	return &artifactRepository{db: db}
}

func (r *artifactRepository) Upsert(ctx context.Context, artifact *domain.OnboardingArtifact) error {
	// RETURNING backfills the struct with the persisted id and created_at
	// when the conflict path updates an existing row.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"object_key", "file_name", "metadata", "updated_at"}),
	}, clause.Returning{}).Create(artifact).Error
}

func (r *artifactRepository) GetByUserAndKind(ctx context.Context, userID uuid.UUID, kind domain.ArtifactKind) (*domain.OnboardingArtifact, error) {
	var artifact domain.OnboardingArtifact
	err := r.db.WithContext(ctx).First(&artifact, "user_id = ? AND kind = ?", userID, kind).Error
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

func (r *artifactRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.OnboardingArtifact, error) {
	var artifacts []*domain.OnboardingArtifact
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&artifacts, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}
