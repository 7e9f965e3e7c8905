package speech

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hammamikhairi/vocalis/internal/logger"
)

func TestAudioCacheMemory(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cache := NewAudioCache("en-US-JennyNeural", "", false, log)

	audio := []byte("fake-wav-bytes")

	if _, ok := cache.Get("hello"); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Put("hello", audio)

	got, ok := cache.Get("hello")
	if !ok {
		t.Fatal("expected hit after put")
	}
	if !bytes.Equal(got, audio) {
		t.Fatal("cached audio differs")
	}
	if !cache.Has("hello") {
		t.Fatal("Has should report cached text")
	}
	if cache.Has("goodbye") {
		t.Fatal("Has should not report uncached text")
	}

	hits, misses := cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits / %d misses, want 1/1", hits, misses)
	}
}

func TestAudioCacheVoiceScoping(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	dir := t.TempDir()

	jenny := NewAudioCache("en-US-JennyNeural", dir, true, log)
	sonia := NewAudioCache("en-GB-SoniaNeural", dir, true, log)

	jenny.Put("hello", []byte("jenny-audio"))

	// Same text, different voice: must miss even with a shared disk dir.
	if _, ok := sonia.Get("hello"); ok {
		t.Fatal("voice change should invalidate cache entries")
	}
}

func TestAudioCacheDiskPromotion(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	dir := t.TempDir()
	audio := []byte("persisted-audio")

	writer := NewAudioCache("en-US-JennyNeural", dir, true, log)
	writer.Put("hello", audio)

	files, err := os.ReadDir(dir)
	if err != nil || len(files) != 1 {
		t.Fatalf("expected 1 cache file on disk, got %d (err=%v)", len(files), err)
	}
	if filepath.Ext(files[0].Name()) != ".wav" {
		t.Errorf("cache file name = %s, want .wav extension", files[0].Name())
	}

	// A fresh cache with diskWrite=false still reads the existing entry.
	reader := NewAudioCache("en-US-JennyNeural", dir, false, log)
	got, ok := reader.Get("hello")
	if !ok {
		t.Fatal("expected disk hit in fresh cache")
	}
	if !bytes.Equal(got, audio) {
		t.Fatal("disk-cached audio differs")
	}
	// Promoted to memory.
	if reader.Len() != 1 {
		t.Errorf("Len = %d after disk promotion, want 1", reader.Len())
	}

	// diskWrite=false must not persist new entries.
	reader.Put("goodbye", []byte("x"))
	files, _ = os.ReadDir(dir)
	if len(files) != 1 {
		t.Errorf("expected 1 file on disk with diskWrite=false, got %d", len(files))
	}
}
