package speech

import (
	"context"

	"github.com/hammamikhairi/vocalis/internal/logger"
)

// VoiceOption configures the Voice.
type VoiceOption func(*Voice)

// WithCacheDir sets the filesystem directory used for persistent audio
// caching. If empty, the disk layer is disabled (pure in-memory).
func WithCacheDir(dir string) VoiceOption {
	return func(v *Voice) { v.cacheDir = dir }
}

// WithDiskWrite controls whether new cache entries are written to disk.
// Even when false, existing on-disk entries are still read.
func WithDiskWrite(enabled bool) VoiceOption {
	return func(v *Voice) { v.diskWrite = enabled }
}

// Voice is the spoken-output pipeline: synthesize (through the cache) and
// play, one utterance at a time. Every call blocks until playback finishes,
// matching the strictly sequential flow of the menu handlers.
//
// A Voice built with a nil Player is "silent": Say synthesizes nothing and
// returns immediately. This is the --no-audio mode.
type Voice struct {
	synth  *Synthesizer
	player *Player // nil when audio output is disabled
	cache  *AudioCache
	log    *logger.Logger

	cacheDir  string
	diskWrite bool
}

// NewVoice creates a spoken-output pipeline. player may be nil to disable
// audible output while keeping the rest of the application working.
func NewVoice(synth *Synthesizer, player *Player, log *logger.Logger, opts ...VoiceOption) *Voice {
	v := &Voice{
		synth:     synth,
		player:    player,
		log:       log,
		diskWrite: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	// Build the cache after options are applied so cacheDir/diskWrite are
	// settled.
	v.cache = NewAudioCache(synth.Voice(), v.cacheDir, v.diskWrite, log)
	return v
}

// Enabled reports whether audible output is available.
func (v *Voice) Enabled() bool { return v.player != nil }

// Synthesize converts text to WAV audio, consulting the cache first.
func (v *Voice) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if audio, ok := v.cache.Get(text); ok {
		return audio, nil
	}
	audio, err := v.synth.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	v.cache.Put(text, audio)
	return audio, nil
}

// Say synthesizes and plays text, blocking until playback finishes.
// A no-op when audio output is disabled.
func (v *Voice) Say(ctx context.Context, text string) error {
	if v.player == nil {
		v.log.Debug("voice: audio disabled, skipping %q", truncateForLog(text, 40))
		return nil
	}
	audio, err := v.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	return v.player.Play(audio)
}

// Cache returns the audio cache used by this Voice. Useful for stats.
func (v *Voice) Cache() *AudioCache { return v.cache }
