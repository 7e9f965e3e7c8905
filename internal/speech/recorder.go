package speech

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"github.com/gen2brain/malgo"

	"github.com/hammamikhairi/vocalis/internal/logger"
)

// RecorderOption configures the Recorder.
type RecorderOption func(*Recorder)

// WithMaxUtterance sets the hard cap on a single recording.
func WithMaxUtterance(d time.Duration) RecorderOption {
	return func(r *Recorder) { r.maxUtterance = d }
}

// WithTrailingSilence sets how much silence after speech ends the capture.
func WithTrailingSilence(d time.Duration) RecorderOption {
	return func(r *Recorder) { r.trailingSilence = d }
}

// WithInitialSilence sets how long to wait for the user to start speaking.
func WithInitialSilence(d time.Duration) RecorderOption {
	return func(r *Recorder) { r.initialSilence = d }
}

// WithSilenceRMS sets the RMS amplitude below which a frame counts as
// silence. Raise it in noisy environments.
func WithSilenceRMS(rms float64) RecorderOption {
	return func(r *Recorder) { r.silenceRMS = rms }
}

// Recorder captures one utterance from the default microphone via
// miniaudio (malgo): 16 kHz mono signed 16-bit PCM, the format the STT
// endpoint expects.
//
// A recording ends when the user stops talking (trailing silence), when
// nothing was said at all (initial silence), or at the utterance cap —
// whichever comes first. The device is opened per call and released
// before Record returns, so nothing holds the microphone between menu
// operations.
type Recorder struct {
	log *logger.Logger

	maxUtterance    time.Duration
	initialSilence  time.Duration
	trailingSilence time.Duration
	silenceRMS      float64
}

// NewRecorder creates a microphone recorder with sensible conversational
// defaults.
func NewRecorder(log *logger.Logger, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		log:             log,
		maxUtterance:    15 * time.Second,
		initialSilence:  5 * time.Second,
		trailingSilence: 1200 * time.Millisecond,
		silenceRMS:      500,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record captures a single utterance and returns it as WAV bytes.
// Blocks until the utterance ends or ctx is cancelled.
func (r *Recorder) Record(ctx context.Context) ([]byte, error) {
	mCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(_ string) {})
	if err != nil {
		return nil, err
	}
	defer func() { _ = mCtx.Uninit(); mCtx.Free() }()

	devCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	devCfg.SampleRate = CaptureSampleRate
	devCfg.Capture.Format = malgo.FormatS16
	devCfg.Capture.Channels = ChannelCount
	devCfg.Alsa.NoMMap = 1

	frames := make(chan []byte, 32)
	callbacks := malgo.DeviceCallbacks{
		Data: func(_ []byte, raw []byte, _ uint32) {
			if len(raw) == 0 {
				return
			}
			frame := make([]byte, len(raw))
			copy(frame, raw)
			select {
			case frames <- frame:
			default: // drop rather than block the audio thread
			}
		},
	}

	device, err := malgo.InitDevice(mCtx.Context, devCfg, callbacks)
	if err != nil {
		return nil, err
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return nil, err
	}
	defer device.Stop()

	r.log.Debug("recorder: capture started (rate=%d)", CaptureSampleRate)

	var pcm []byte
	started := time.Now()
	lastVoice := time.Time{}
	heardSpeech := false

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case frame := <-frames:
			pcm = append(pcm, frame...)

			if frameRMS(frame) >= r.silenceRMS {
				heardSpeech = true
				lastVoice = time.Now()
			}

		case <-time.After(100 * time.Millisecond):
			// No frame this tick — fall through to the deadline checks.
		}

		now := time.Now()
		switch {
		case now.Sub(started) >= r.maxUtterance:
			r.log.Debug("recorder: utterance cap reached (%s)", r.maxUtterance)
			return r.finish(pcm)
		case heardSpeech && now.Sub(lastVoice) >= r.trailingSilence:
			r.log.Debug("recorder: trailing silence, utterance ended (%d bytes)", len(pcm))
			return r.finish(pcm)
		case !heardSpeech && now.Sub(started) >= r.initialSilence:
			r.log.Debug("recorder: nothing heard within %s", r.initialSilence)
			return r.finish(pcm)
		}
	}
}

// finish wraps the captured PCM in a WAV header. A silence-only recording
// is still returned — the recognition service reports NoMatch for it,
// which gives the user a clearer message than failing locally.
func (r *Recorder) finish(pcm []byte) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}
	return buildWAV(pcm, CaptureSampleRate), nil
}

// frameRMS computes the root-mean-square amplitude of a 16-bit LE PCM frame.
func frameRMS(frame []byte) float64 {
	n := len(frame) / 2
	if n == 0 {
		return 0
	}
	var sumSq float64
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(frame[i*2 : i*2+2]))
		sumSq += float64(v) * float64(v)
	}
	return math.Sqrt(sumSq / float64(n))
}
