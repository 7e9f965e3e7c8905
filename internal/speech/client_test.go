package speech

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hammamikhairi/vocalis/internal/logger"
)

func TestSynthesize(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	wantAudio := []byte("riff-audio-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "test-key" {
			t.Errorf("subscription key = %q", got)
		}
		if got := r.Header.Get("X-Microsoft-OutputFormat"); got != DefaultAudioFormat {
			t.Errorf("output format = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		ssml := string(body)
		if !strings.Contains(ssml, "name='en-US-JennyNeural'") {
			t.Errorf("ssml missing voice: %s", ssml)
		}
		if !strings.Contains(ssml, "hello world") {
			t.Errorf("ssml missing text: %s", ssml)
		}
		w.Write(wantAudio)
	}))
	defer srv.Close()

	synth := NewSynthesizer("test-key", "westus", "en-US-JennyNeural", "en-US", log,
		WithSynthEndpoint(srv.URL),
	)

	audio, err := synth.Synthesize(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if string(audio) != string(wantAudio) {
		t.Fatal("audio differs from server response")
	}
}

func TestSynthesizeEscapesSSML(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)

	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	synth := NewSynthesizer("k", "westus", "en-US-JennyNeural", "en-US", log,
		WithSynthEndpoint(srv.URL),
	)
	if _, err := synth.Synthesize(context.Background(), `ham & eggs <cheap>`); err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if !strings.Contains(gotBody, "ham &amp; eggs &lt;cheap&gt;") {
		t.Errorf("special characters not escaped: %s", gotBody)
	}
}

func TestSynthesizeServerError(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad subscription key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	synth := NewSynthesizer("wrong", "westus", "en-US-JennyNeural", "en-US", log,
		WithSynthEndpoint(srv.URL),
	)
	_, err := synth.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error %q does not mention status", err)
	}
}

func TestRecognize(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	wav := buildWAV([]byte{0x01, 0x02}, CaptureSampleRate)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("language"); got != "en-US" {
			t.Errorf("language = %q", got)
		}
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "test-key" {
			t.Errorf("subscription key = %q", got)
		}
		if got := r.Header.Get("Content-Type"); !strings.Contains(got, "audio/wav") {
			t.Errorf("content type = %q", got)
		}
		w.Write([]byte(`{"RecognitionStatus":"Success","DisplayText":"What's the weather like?"}`))
	}))
	defer srv.Close()

	rec := NewRecognizer("test-key", "westus", "en-US", log,
		WithRecognizeEndpoint(srv.URL),
	)

	text, err := rec.Recognize(context.Background(), wav)
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if text != "What's the weather like?" {
		t.Errorf("text = %q", text)
	}
}

func TestRecognizeStatuses(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	wav := buildWAV([]byte{0x01, 0x02}, CaptureSampleRate)

	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{"no match", "NoMatch", ErrNoMatch},
		{"initial silence", "InitialSilenceTimeout", ErrNoMatch},
		{"babble", "BabbleTimeout", ErrNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"RecognitionStatus":"` + tt.status + `"}`))
			}))
			defer srv.Close()

			rec := NewRecognizer("k", "westus", "en-US", log, WithRecognizeEndpoint(srv.URL))
			_, err := rec.Recognize(context.Background(), wav)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecognizeEmptyAudio(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	rec := NewRecognizer("k", "westus", "en-US", log)

	if _, err := rec.Recognize(context.Background(), nil); !errors.Is(err, ErrNoAudio) {
		t.Fatalf("error = %v, want ErrNoAudio", err)
	}
}

func TestRecognizeServerError(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	wav := buildWAV([]byte{0x01, 0x02}, CaptureSampleRate)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	rec := NewRecognizer("k", "westus", "en-US", log, WithRecognizeEndpoint(srv.URL))
	if _, err := rec.Recognize(context.Background(), wav); err == nil {
		t.Fatal("expected error on 429")
	}
}
