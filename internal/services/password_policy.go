package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const minPassphraseRunes = 8

var ErrWeakPassphrase = errors.New("weak passphrase")

var passphraseCharacterClasses = []struct {
	name  string
	match func(rune) bool
}{
	{name: "an uppercase letter", match: unicode.IsUpper},
	{name: "a lowercase letter", match: unicode.IsLower},
	{name: "a digit", match: unicode.IsDigit},
}

// ValidatePassphraseStrength wraps ErrWeakPassphrase with what is missing.
func ValidatePassphraseStrength(passphrase string) error {
	if count := len([]rune(passphrase)); count < minPassphraseRunes {
		return fmt.Errorf("%w: %d characters, need at least %d", ErrWeakPassphrase, count, minPassphraseRunes)
	}

	var missing []string
	for _, class := range passphraseCharacterClasses {
		if strings.IndexFunc(passphrase, class.match) < 0 {
			missing = append(missing, class.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: add %s", ErrWeakPassphrase, strings.Join(missing, " and "))
	}
	return nil
}
