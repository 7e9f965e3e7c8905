// Package speech provides the Azure Speech REST clients (text-to-speech
// and speech-to-text) together with local audio capture and playback.
package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hammamikhairi/vocalis/internal/logger"
)

// SynthesizerOption configures the Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithAudioFormat sets the audio output format.
func WithAudioFormat(format string) SynthesizerOption {
	return func(s *Synthesizer) {
		s.format = format
	}
}

// WithSynthTimeout sets the HTTP client timeout for TTS requests.
func WithSynthTimeout(d time.Duration) SynthesizerOption {
	return func(s *Synthesizer) {
		s.httpClient.Timeout = d
	}
}

// WithSynthEndpoint overrides the regional endpoint URL. Used in tests.
func WithSynthEndpoint(url string) SynthesizerOption {
	return func(s *Synthesizer) {
		s.endpoint = url
	}
}

// Synthesizer handles text-to-speech via the Azure Cognitive Services
// REST endpoint.
type Synthesizer struct {
	subscriptionKey string
	endpoint        string
	voice           string
	language        string
	format          string
	httpClient      *http.Client
	log             *logger.Logger
}

// Voice returns the configured voice name.
func (s *Synthesizer) Voice() string { return s.voice }

// NewSynthesizer creates an Azure TTS client for the given region, voice,
// and language.
func NewSynthesizer(key, region, voice, language string, log *logger.Logger, opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{
		subscriptionKey: key,
		endpoint:        fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region),
		voice:           voice,
		language:        language,
		format:          DefaultAudioFormat,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize converts text to speech audio data (WAV bytes).
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ssml := s.buildSSML(text)
	s.log.Debug("tts: synthesizing %d chars with voice %s", len(text), s.voice)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Ocp-Apim-Subscription-Key", s.subscriptionKey)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", s.format)
	req.Header.Set("User-Agent", "Vocalis/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("azure tts error %d: %s", resp.StatusCode, string(body))
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio data: %w", err)
	}

	s.log.Debug("tts: got %d bytes of audio", len(audioData))
	return audioData, nil
}

// buildSSML creates SSML markup for the synthesis request.
func (s *Synthesizer) buildSSML(text string) string {
	return fmt.Sprintf(
		`<speak version='1.0' xml:lang='%s'><voice xml:lang='%s' name='%s'>%s</voice></speak>`,
		s.language, s.language, s.voice, escapeSSML(text),
	)
}

// escapeSSML escapes the XML special characters in user-provided text so
// arbitrary input can't break out of the SSML voice element.
func escapeSSML(text string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(text)
}
