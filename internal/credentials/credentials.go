// Package credentials keeps provider API keys in the system keyring.
package credentials

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
)

// Service is the keyring service name.
const Service = "transcript-flow"

// ErrNotFound is returned when no key is stored for a provider.
var ErrNotFound = errors.New("credential not found")

// SystemUser is the current login name, used to scope stored keys.
func SystemUser() string {
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}
	if username == "" {
		username = "anon"
	}
	return username
}

func account(provider string) string {
	return provider + ":" + SystemUser()
}

// Lookup returns the key stored for provider.
func Lookup(provider string) (string, error) {
	secret, err := keyring.Get(Service, account(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s key: %w", provider, err)
	}
	return secret, nil
}

// Store saves the key for provider.
func Store(provider, secret string) error {
	if err := keyring.Set(Service, account(provider), secret); err != nil {
		return fmt.Errorf("save %s key: %w", provider, err)
	}
	return nil
}

// Delete removes the key stored for provider.
func Delete(provider string) error {
	err := keyring.Delete(Service, account(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete %s key: %w", provider, err)
	}
	return nil
}

// Prompt prints label to w and reads a secret from the terminal without
// echoing it.
func Prompt(w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// Resolve fills provider keys missing from cfg with keys from the keyring.
// Keys set in the config file or environment win.
func Resolve(cfg *config.Config) error {
	if len(cfg.Gemini.APIKeys) == 0 {
		secret, err := Lookup(config.ProviderGemini)
		switch {
		case err == nil:
			for _, k := range strings.Split(secret, ",") {
				if k = strings.TrimSpace(k); k != "" {
					cfg.Gemini.APIKeys = append(cfg.Gemini.APIKeys, k)
				}
			}
		case !errors.Is(err, ErrNotFound):
			return err
		}
	}

	if cfg.OpenAI.APIKey == "" {
		secret, err := Lookup(config.ProviderOpenAI)
		switch {
		case err == nil:
			cfg.OpenAI.APIKey = secret
		case !errors.Is(err, ErrNotFound):
			return err
		}
	}
	return nil
}
