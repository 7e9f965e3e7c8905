// Package config loads the session configuration from the environment.
//
// Configuration is read once at startup and is read-only for the process
// lifetime. A missing required variable is a fatal startup condition —
// there are no retries and no partial modes.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Env var names for the required credentials.
const (
	EnvSpeechKey        = "SPEECH_KEY"
	EnvSpeechRegion     = "SPEECH_REGION"
	EnvOpenAIKey        = "AZURE_OPENAI_KEY"
	EnvOpenAIEndpoint   = "AZURE_OPENAI_ENDPOINT"
	EnvOpenAIDeployment = "AZURE_OPENAI_DEPLOYMENT"
)

// Optional overrides for the speech voice and recognition language.
const (
	EnvSpeechVoice    = "SPEECH_VOICE"
	EnvSpeechLanguage = "SPEECH_LANGUAGE"
)

// Defaults applied when the optional variables are unset.
const (
	DefaultVoice    = "en-US-JennyNeural"
	DefaultLanguage = "en-US"
)

// Sentinel errors for the two credential groups.
var (
	ErrMissingSpeech = errors.New("missing Azure Speech configuration")
	ErrMissingOpenAI = errors.New("missing Azure OpenAI configuration")
)

// Config holds every credential and setting the application needs.
// Load it once in main and pass it by value.
type Config struct {
	SpeechKey    string
	SpeechRegion string

	OpenAIKey        string
	OpenAIEndpoint   string
	OpenAIDeployment string

	Voice    string
	Language string
}

// Load reads the configuration from the environment and validates it.
// Call godotenv.Load first if you want .env support.
func Load() (Config, error) {
	cfg := Config{
		SpeechKey:        strings.TrimSpace(os.Getenv(EnvSpeechKey)),
		SpeechRegion:     strings.TrimSpace(os.Getenv(EnvSpeechRegion)),
		OpenAIKey:        strings.TrimSpace(os.Getenv(EnvOpenAIKey)),
		OpenAIEndpoint:   strings.TrimSpace(os.Getenv(EnvOpenAIEndpoint)),
		OpenAIDeployment: strings.TrimSpace(os.Getenv(EnvOpenAIDeployment)),
		Voice:            strings.TrimSpace(os.Getenv(EnvSpeechVoice)),
		Language:         strings.TrimSpace(os.Getenv(EnvSpeechLanguage)),
	}
	if cfg.Voice == "" {
		cfg.Voice = DefaultVoice
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every required variable is set. The returned error
// names each missing variable so the user can fix all of them at once.
func (c Config) Validate() error {
	var missing []string
	if c.SpeechKey == "" {
		missing = append(missing, EnvSpeechKey)
	}
	if c.SpeechRegion == "" {
		missing = append(missing, EnvSpeechRegion)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingSpeech, strings.Join(missing, ", "))
	}

	missing = missing[:0]
	if c.OpenAIKey == "" {
		missing = append(missing, EnvOpenAIKey)
	}
	if c.OpenAIEndpoint == "" {
		missing = append(missing, EnvOpenAIEndpoint)
	}
	if c.OpenAIDeployment == "" {
		missing = append(missing, EnvOpenAIDeployment)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingOpenAI, strings.Join(missing, ", "))
	}
	return nil
}
