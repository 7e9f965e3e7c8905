package speech

import "errors"

// Audio format requested from Azure TTS and expected by the player.
const DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

// Playback parameters matching the default TTS format.
const (
	PlaybackSampleRate = 24000
	ChannelCount       = 1
	BitDepth           = 16
)

// Capture parameters for speech recognition. Azure's short-audio endpoint
// wants 16 kHz mono PCM.
const CaptureSampleRate = 16000

// Sentinel errors surfaced by the recognition pipeline.
var (
	// ErrNoMatch means the service processed the audio but could not
	// recognize any speech in it.
	ErrNoMatch = errors.New("no speech could be recognized")
	// ErrNoAudio means the recording contained no usable audio.
	ErrNoAudio = errors.New("no audio captured")
)
