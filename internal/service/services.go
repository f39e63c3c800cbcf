package service

import (
	"github.com/rehearse-io/rehearse-server/internal/config"
	"github.com/rehearse-io/rehearse-server/internal/repository"
	"github.com/rehearse-io/rehearse-server/internal/storage"
)

type Services struct {
	Auth       *AuthService
	Onboarding *OnboardingService
}

func NewServices(repos *repository.Repositories, store storage.ObjectStore, cfg *config.Config) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, cfg),
		Onboarding: NewOnboardingService(repos.Artifact, store, cfg),
	}
}
