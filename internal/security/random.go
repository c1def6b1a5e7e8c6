package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	upperAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerAlphabet = "abcdefghijkmnopqrstuvwxyz"
	digitAlphabet = "23456789"

	// PassphraseAlphabet leaves out look-alike characters such as 0/O and 1/l.
	PassphraseAlphabet = upperAlphabet + lowerAlphabet + digitAlphabet

	minPassphraseLength = 8
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	value := make([]byte, length)
	for index := range value {
		position, err := randomIndex(len(alphabet))
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position]
	}
	return string(value), nil
}

// GeneratePassphrase returns a random passphrase of at least eight
// characters that contains an upper case letter, a lower case letter and a
// digit.
func GeneratePassphrase(length int) (string, error) {
	if length < minPassphraseLength {
		length = minPassphraseLength
	}

	rest, err := RandomString(length-3, PassphraseAlphabet)
	if err != nil {
		return "", err
	}
	value := []byte(rest)
	for _, alphabet := range []string{upperAlphabet, lowerAlphabet, digitAlphabet} {
		required, err := RandomString(1, alphabet)
		if err != nil {
			return "", err
		}
		value = append(value, required[0])
	}

	for index := len(value) - 1; index > 0; index-- {
		swap, err := randomIndex(index + 1)
		if err != nil {
			return "", err
		}
		value[index], value[swap] = value[swap], value[index]
	}
	return string(value), nil
}

func randomIndex(limit int) (int, error) {
	position, err := rand.Int(rand.Reader, big.NewInt(int64(limit)))
	if err != nil {
		return 0, err
	}
	return int(position.Int64()), nil
}
