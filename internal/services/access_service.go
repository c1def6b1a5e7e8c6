package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/luna/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPassphraseMissing       = errors.New("passphrase missing")
	ErrPassphraseInvalid       = errors.New("passphrase invalid")
	ErrPassphraseNotConfigured = errors.New("passphrase not configured")
	ErrAccessStateFailed       = errors.New("access state failed")
)

// AccessService guards a single-owner instance with an optional
// passphrase. Without one, the instance is open.
type AccessService struct {
	store KeyValueStore
	cost  int
}

func NewAccessService(store KeyValueStore) *AccessService {
	return &AccessService{store: store, cost: bcrypt.DefaultCost}
}

func (service *AccessService) HasPassphrase() (bool, error) {
	_, found, err := service.store.Get(models.KeyAccessPassphraseHash)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrAccessStateFailed, err)
	}
	return found, nil
}

func (service *AccessService) SetPassphrase(raw string) error {
	passphrase := strings.TrimSpace(raw)
	if passphrase == "" {
		return ErrPassphraseMissing
	}
	if err := ValidatePassphraseStrength(passphrase); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), service.cost)
	if err != nil {
		return fmt.Errorf("hash passphrase: %w", err)
	}
	if err := service.store.Set(models.KeyAccessPassphraseHash, string(hash)); err != nil {
		return fmt.Errorf("%w: %w", ErrAccessStateFailed, err)
	}
	return nil
}

func (service *AccessService) VerifyPassphrase(raw string) error {
	passphrase := strings.TrimSpace(raw)
	if passphrase == "" {
		return ErrPassphraseMissing
	}

	hash, found, err := service.store.Get(models.KeyAccessPassphraseHash)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAccessStateFailed, err)
	}
	if !found {
		return ErrPassphraseNotConfigured
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase)) != nil {
		return ErrPassphraseInvalid
	}
	return nil
}

func (service *AccessService) ClearPassphrase() error {
	if err := service.store.RemoveAll(models.KeyAccessPassphraseHash); err != nil {
		return fmt.Errorf("%w: %w", ErrAccessStateFailed, err)
	}
	return nil
}
