package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/luna/internal/models"
)

var ErrOnboardingStateFailed = errors.New("onboarding state failed")

type OnboardingService struct {
	store KeyValueStore
}

func NewOnboardingService(store KeyValueStore) *OnboardingService {
	return &OnboardingService{store: store}
}

func (service *OnboardingService) IsCompleted() (bool, error) {
	raw, found, err := service.store.Get(models.KeyHasCompletedOnboarding)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrOnboardingStateFailed, err)
	}
	return found && raw == "true", nil
}

func (service *OnboardingService) Complete() error {
	if err := service.store.Set(models.KeyHasCompletedOnboarding, "true"); err != nil {
		return fmt.Errorf("%w: %w", ErrOnboardingStateFailed, err)
	}
	return nil
}
