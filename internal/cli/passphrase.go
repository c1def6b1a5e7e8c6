package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/luna/internal/security"
)

const temporaryPassphraseLength = 16

var ErrPassphraseMismatch = errors.New("passphrases do not match")

type passphraseSetter interface {
	SetPassphrase(raw string) error
}

// PassphraseReader shows prompt and returns one line of input.
type PassphraseReader func(prompt string) (string, error)

// TerminalPassphraseReader reads without echo when stdin is a terminal and
// falls back to plain line reads for piped input.
func TerminalPassphraseReader(stdin *os.File, prompts io.Writer) PassphraseReader {
	lines := bufio.NewReader(stdin)
	return func(prompt string) (string, error) {
		fmt.Fprint(prompts, prompt)
		if restore, err := disableEcho(stdin); err == nil {
			defer func() {
				restore()
				fmt.Fprintln(prompts)
			}()
		}

		line, err := lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

func RunSetPassphraseCommand(access passphraseSetter, read PassphraseReader, stdout io.Writer) error {
	passphrase, err := read("New passphrase: ")
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	confirmation, err := read("Repeat passphrase: ")
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	if passphrase != confirmation {
		return ErrPassphraseMismatch
	}

	if err := access.SetPassphrase(passphrase); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Passphrase updated. API requests now need a session token.")
	return nil
}

// RunResetPassphraseCommand replaces the passphrase with a generated one
// and prints it once.
func RunResetPassphraseCommand(access passphraseSetter, stdout io.Writer) error {
	temporary, err := security.GeneratePassphrase(temporaryPassphraseLength)
	if err != nil {
		return fmt.Errorf("generate temporary passphrase: %w", err)
	}
	if err := access.SetPassphrase(temporary); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Passphrase reset successful")
	fmt.Fprintf(stdout, "Temporary passphrase: %s\n", temporary)
	fmt.Fprintln(stdout, "Change it with `luna passphrase set`.")
	return nil
}
