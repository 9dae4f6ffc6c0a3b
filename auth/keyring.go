// Package auth stores the Gemini API key in the system keyring and resolves it from config, env or keyring.
package auth

import (
	"errors"
	"os"
	"strings"

	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/constant"
	"github.com/tubescribe/tubescribe/key"
	"github.com/zalando/go-keyring"
)

const user = "gemini-api-key"

// FallbackEnv lists the bare environment variables consulted after the prefixed config key.
var FallbackEnv = []string{"GEMINI_API_KEY", "API_KEY"}

// Origin tells where a resolved key came from.
type Origin string

const (
	OriginConfig  Origin = "config"
	OriginEnv     Origin = "env"
	OriginKeyring Origin = "keyring"
)

// SetAPIKey persists the key to the system keyring.
func SetAPIKey(apiKey string) error {
	return keyring.Set(constant.Tubescribe, user, apiKey)
}

// GetAPIKey reads the key from the system keyring.
func GetAPIKey() (string, error) {
	return keyring.Get(constant.Tubescribe, user)
}

// DeleteAPIKey removes the key from the system keyring. Deleting a missing key is not an error.
func DeleteAPIKey() error {
	err := keyring.Delete(constant.Tubescribe, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// ResolveAPIKey looks the key up in config (which includes TUBESCRIBE_GEMINI_API_KEY),
// then the fallback environment variables, then the keyring.
func ResolveAPIKey() mo.Option[Resolved] {
	if v := strings.TrimSpace(viper.GetString(key.GeminiAPIKey)); v != "" {
		return mo.Some(Resolved{Key: v, Origin: OriginConfig})
	}

	for _, name := range FallbackEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return mo.Some(Resolved{Key: v, Origin: OriginEnv, Name: name})
		}
	}

	if v, err := GetAPIKey(); err == nil && v != "" {
		return mo.Some(Resolved{Key: v, Origin: OriginKeyring})
	}

	return mo.None[Resolved]()
}

// Resolved is an API key together with its origin.
type Resolved struct {
	Key    string
	Origin Origin
	// Name is the environment variable the key was read from, if any.
	Name string
}
