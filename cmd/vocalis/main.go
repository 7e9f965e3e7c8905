// Vocalis — a voice chat demo for Azure Speech and Azure OpenAI.
//
// Usage:
//
//	vocalis [-debug] [-quiet] [-no-audio]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/vocalis/internal/chat"
	"github.com/hammamikhairi/vocalis/internal/config"
	"github.com/hammamikhairi/vocalis/internal/conversation"
	"github.com/hammamikhairi/vocalis/internal/display"
	"github.com/hammamikhairi/vocalis/internal/logger"
	"github.com/hammamikhairi/vocalis/internal/realtime"
	"github.com/hammamikhairi/vocalis/internal/speech"
)

func main() {
	_ = godotenv.Load()

	debug := flag.Bool("debug", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".vocalis-logs/vocalis.log", "file to write logs to (use \"stderr\" to log to console)")
	noAudio := flag.Bool("no-audio", false, "disable audio playback (synthesis results are discarded)")
	diskCache := flag.Bool("disk-cache", true, "persist TTS audio cache to disk (reads from disk even when false)")
	cacheDir := flag.String("cache-dir", ".vocalis-cache", "directory for persistent TTS audio cache")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *debug {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	logOut, logCloser, err := logger.OpenFile(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		logOut = os.Stderr
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	// Redirect Go's default log package (used by third-party libs) to the
	// same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Load configuration — missing credentials are fatal.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	ui := display.NewUI()
	parser := conversation.NewMenuParser(log)

	synth := speech.NewSynthesizer(cfg.SpeechKey, cfg.SpeechRegion, cfg.Voice, cfg.Language, log)

	var player *speech.Player
	if !*noAudio {
		player, err = speech.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, playback disabled: %v", err)
			player = nil
		}
	}

	voice := speech.NewVoice(synth, player, log,
		speech.WithCacheDir(*cacheDir),
		speech.WithDiskWrite(*diskCache),
	)
	if voice.Enabled() {
		log.Info("TTS enabled (voice=%s, region=%s)", cfg.Voice, cfg.SpeechRegion)
	}

	recorder := speech.NewRecorder(log)
	recognizer := speech.NewRecognizer(cfg.SpeechKey, cfg.SpeechRegion, cfg.Language, log)

	chatClient := realtime.NewClient(cfg.OpenAIEndpoint, cfg.OpenAIDeployment, cfg.OpenAIKey, log)

	app := &cliApp{
		parser:     parser,
		voice:      voice,
		recorder:   recorder,
		recognizer: recognizer,
		chat:       chatClient,
		log:        log,
		ui:         ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Azure Speech Services Chat Application"))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

type cliApp struct {
	parser     *conversation.MenuParser
	voice      *speech.Voice
	recorder   *speech.Recorder
	recognizer *speech.Recognizer
	chat       *realtime.Client
	log        *logger.Logger
	ui         *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	for {
		a.showMenu()

		input, ok := a.readLine(ctx)
		if !ok {
			return
		}

		choice := a.parser.Parse(input)
		a.log.Debug("menu input %q -> %s", input, choice)

		switch choice {
		case conversation.ChoiceTTS:
			a.handleTTS(ctx)
		case conversation.ChoiceSTT:
			a.handleSTT(ctx)
		case conversation.ChoiceVoiceChat:
			a.handleVoiceChat(ctx)
		case conversation.ChoiceQuit:
			a.ui.PrintChat("Goodbye!")
			return
		default:
			a.ui.PrintUrgent("Invalid choice. Please try again.")
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func (a *cliApp) showMenu() {
	a.ui.Println("")
	a.ui.PrintHeader("1. Text-to-Speech")
	a.ui.PrintHeader("2. Speech-to-Text")
	a.ui.PrintHeader("3. Voice Chat with AI")
	a.ui.PrintHeader("4. Exit")
	a.ui.PrintHint("Choose an option (1-4)")
}

// readLine blocks for one line of typed input. Returns ok=false when
// the UI is shutting down.
func (a *cliApp) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case <-a.ui.QuitChan():
		return "", false
	case input, ok := <-a.ui.InputChan():
		if !ok {
			return "", false
		}
		return strings.TrimSpace(input), true
	}
}

// pause waits for the user to press Enter before returning to the menu.
func (a *cliApp) pause(ctx context.Context) {
	a.ui.PrintHint("Press Enter to continue...")
	a.readLine(ctx)
}

// ── Text-to-Speech ───────────────────────────────────────────────

func (a *cliApp) handleTTS(ctx context.Context) {
	a.ui.PrintInstruction("Enter text to convert to speech:")

	text, ok := a.readLine(ctx)
	if !ok {
		return
	}
	if text == "" {
		return
	}

	if !a.voice.Enabled() {
		// Still exercise synthesis so the user sees credential problems,
		// even though nothing will be audible.
		if _, err := a.voice.Synthesize(ctx, text); err != nil {
			a.log.Error("text-to-speech: %v", err)
			a.ui.PrintUrgent(fmt.Sprintf("Speech synthesis failed: %v", err))
			a.pause(ctx)
			return
		}
		a.ui.PrintHint("Speech synthesis succeeded (audio playback disabled).")
		a.pause(ctx)
		return
	}

	if err := a.voice.Say(ctx, text); err != nil {
		a.log.Error("text-to-speech: %v", err)
		a.ui.PrintUrgent(fmt.Sprintf("Speech synthesis failed: %v", err))
		a.pause(ctx)
		return
	}

	a.ui.PrintHint("Speech synthesis succeeded!")
	a.pause(ctx)
}

// ── Speech-to-Text ───────────────────────────────────────────────

func (a *cliApp) handleSTT(ctx context.Context) {
	a.ui.PrintHint("Initializing speech recognition...")
	a.say(ctx, speech.LineListening())

	a.ui.PrintInstruction("Listening...")
	wav, err := a.recorder.Record(ctx)
	if err != nil {
		a.reportRecordingError(ctx, err)
		a.pause(ctx)
		return
	}

	text, err := a.recognizer.Recognize(ctx, wav)
	if err != nil {
		a.reportRecognitionError(ctx, err)
		a.pause(ctx)
		return
	}

	a.ui.Printf("Recognized text: %s", text)
	a.say(ctx, speech.LineHeard(text))
	a.pause(ctx)
}

// ── Voice chat ───────────────────────────────────────────────────

func (a *cliApp) handleVoiceChat(ctx context.Context) {
	a.ui.PrintHint("Starting voice chat (say 'exit' to end)...")

	history := chat.NewHistory("")

	welcome := speech.LineWelcome()
	a.ui.PrintChat(welcome)
	a.say(ctx, welcome)

	for {
		if ctx.Err() != nil {
			return
		}

		a.ui.PrintInstruction("Listening...")

		wav, err := a.recorder.Record(ctx)
		if err != nil {
			if errors.Is(err, speech.ErrNoAudio) {
				// Nothing heard — just listen again.
				continue
			}
			a.reportRecordingError(ctx, err)
			break
		}

		text, err := a.recognizer.Recognize(ctx, wav)
		if err != nil {
			a.reportRecognitionError(ctx, err)
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		a.ui.PrintVoice(text)

		if conversation.IsExit(text) {
			goodbye := speech.LineGoodbye()
			a.ui.PrintChat(goodbye)
			a.say(ctx, goodbye)
			break
		}

		history.AddUser(text)

		a.ui.PrintHint("Thinking...")
		reply, err := a.chat.Complete(ctx, history.Messages())
		if err != nil {
			a.log.Error("chat completion: %v", err)
			a.ui.PrintUrgent(fmt.Sprintf("Error: %v", err))
			a.say(ctx, speech.LineChatError())
			continue
		}

		a.ui.PrintChat(reply)
		history.AddAssistant(reply)
		a.say(ctx, reply)
	}

	a.pause(ctx)
}

// ── Helpers ──────────────────────────────────────────────────────

// say speaks a line, logging failures without interrupting the flow.
// Spoken feedback is best-effort; the printed output already carries
// the information.
func (a *cliApp) say(ctx context.Context, text string) {
	if err := a.voice.Say(ctx, text); err != nil {
		a.log.Error("speaking %q: %v", text, err)
	}
}

func (a *cliApp) reportRecordingError(ctx context.Context, err error) {
	if errors.Is(err, speech.ErrNoAudio) {
		a.ui.PrintUrgent("No speech could be recognized.")
		a.say(ctx, speech.LineNoMatch())
		return
	}
	a.log.Error("microphone capture: %v", err)
	a.ui.PrintUrgent(fmt.Sprintf("Recording failed: %v", err))
	a.say(ctx, speech.LineRecognitionTrouble())
}

func (a *cliApp) reportRecognitionError(ctx context.Context, err error) {
	if errors.Is(err, speech.ErrNoMatch) || errors.Is(err, speech.ErrNoAudio) {
		a.ui.PrintUrgent("No speech could be recognized.")
		a.say(ctx, speech.LineNoMatch())
		return
	}
	a.log.Error("speech recognition: %v", err)
	a.ui.PrintUrgent(fmt.Sprintf("Recognition failed: %v", err))
	a.say(ctx, speech.LineRecognitionTrouble())
}
