package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hammamikhairi/vocalis/internal/logger"
)

// RecognizerOption configures the Recognizer.
type RecognizerOption func(*Recognizer)

// WithRecognizeTimeout sets the HTTP client timeout for STT requests.
func WithRecognizeTimeout(d time.Duration) RecognizerOption {
	return func(r *Recognizer) {
		r.httpClient.Timeout = d
	}
}

// WithRecognizeEndpoint overrides the regional endpoint URL. Used in tests.
func WithRecognizeEndpoint(url string) RecognizerOption {
	return func(r *Recognizer) {
		r.endpoint = url
	}
}

// Recognizer handles speech-to-text via the Azure Cognitive Services
// short-audio REST endpoint. One utterance per request, WAV in, text out.
type Recognizer struct {
	subscriptionKey string
	endpoint        string
	language        string
	httpClient      *http.Client
	log             *logger.Logger
}

// NewRecognizer creates an Azure STT client for the given region and
// recognition language.
func NewRecognizer(key, region, language string, log *logger.Logger, opts ...RecognizerOption) *Recognizer {
	r := &Recognizer{
		subscriptionKey: key,
		endpoint:        fmt.Sprintf("https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1", region),
		language:        language,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// recognitionResult is the response envelope from the short-audio endpoint.
type recognitionResult struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// Recognize sends one WAV utterance to Azure and returns the recognized
// text. Returns ErrNoMatch when the service found no speech in the audio.
func (r *Recognizer) Recognize(ctx context.Context, wav []byte) (string, error) {
	if len(wav) == 0 {
		return "", ErrNoAudio
	}

	url := r.endpoint + "?language=" + r.language
	r.log.Debug("stt: recognizing %d bytes of audio", len(wav))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(wav))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Ocp-Apim-Subscription-Key", r.subscriptionKey)
	req.Header.Set("Content-Type", fmt.Sprintf("audio/wav; codecs=audio/pcm; samplerate=%d", CaptureSampleRate))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Vocalis/1.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("stt request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("azure stt error %d: %s", resp.StatusCode, string(body))
	}

	var result recognitionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	switch result.RecognitionStatus {
	case "Success":
		r.log.Debug("stt: recognized %q", result.DisplayText)
		return result.DisplayText, nil
	case "NoMatch", "InitialSilenceTimeout", "BabbleTimeout":
		r.log.Debug("stt: no match (%s)", result.RecognitionStatus)
		return "", fmt.Errorf("%w (%s)", ErrNoMatch, result.RecognitionStatus)
	default:
		return "", fmt.Errorf("recognition failed: %s", result.RecognitionStatus)
	}
}
