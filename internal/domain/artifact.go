package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ArtifactKind identifies one of the three onboarding steps.
type ArtifactKind string

const (
	ArtifactResume ArtifactKind = "resume"
	ArtifactPhoto  ArtifactKind = "photo"
	ArtifactVoice  ArtifactKind = "voice"
)

func (k ArtifactKind) Valid() bool {
	switch k {
	case ArtifactResume, ArtifactPhoto, ArtifactVoice:
		return true
	}
	return false
}

// OnboardingArtifact is one uploaded onboarding file. A user holds at most
// one artifact per kind; re-uploading replaces the previous one.
type OnboardingArtifact struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_artifacts_user_kind"`
	Kind      ArtifactKind   `json:"kind" gorm:"type:varchar(16);not null;uniqueIndex:idx_artifacts_user_kind"`
	ObjectKey string         `json:"-" gorm:"not null"`
	FileName  string         `json:"fileName" gorm:"not null"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"uploadedAt"`
	UpdatedAt time.Time      `json:"-"`
}
