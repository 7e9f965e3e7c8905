package conversation

import (
	"testing"

	"github.com/hammamikhairi/vocalis/internal/logger"
)

func TestMenuParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewMenuParser(log)

	tests := []struct {
		input string
		want  Choice
	}{
		// Digits
		{"1", ChoiceTTS},
		{"2", ChoiceSTT},
		{"3", ChoiceVoiceChat},
		{"4", ChoiceQuit},

		// TTS aliases
		{"tts", ChoiceTTS},
		{"speak", ChoiceTTS},
		{"text to speech", ChoiceTTS},
		{"synthesize", ChoiceTTS},

		// STT aliases
		{"stt", ChoiceSTT},
		{"listen", ChoiceSTT},
		{"speech-to-text", ChoiceSTT},
		{"transcribe", ChoiceSTT},

		// Voice chat aliases
		{"chat", ChoiceVoiceChat},
		{"voice chat", ChoiceVoiceChat},
		{"talk", ChoiceVoiceChat},

		// Quit aliases
		{"q", ChoiceQuit},
		{"quit", ChoiceQuit},
		{"EXIT", ChoiceQuit},
		{"goodbye", ChoiceQuit},

		// Whitespace and case
		{"  2  ", ChoiceSTT},
		{"Chat", ChoiceVoiceChat},

		// Unknown
		{"5", ChoiceUnknown},
		{"make me a sandwich", ChoiceUnknown},
		{"", ChoiceUnknown},
	}

	for _, tt := range tests {
		if got := parser.Parse(tt.input); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsExit(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"exit", true},
		{"Exit.", true},
		{"EXIT!", true},
		{"  quit  ", true},
		{"Goodbye.", true},
		{"stop", true},
		{"exiting", false},
		{"don't exit", false},
		{"hello", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsExit(tt.input); got != tt.want {
			t.Errorf("IsExit(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
