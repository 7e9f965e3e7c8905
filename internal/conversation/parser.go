// Package conversation provides menu choice parsing and spoken-exit detection.
package conversation

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/vocalis/internal/logger"
)

// Choice identifies a main menu action.
type Choice int

const (
	ChoiceUnknown Choice = iota
	ChoiceTTS
	ChoiceSTT
	ChoiceVoiceChat
	ChoiceQuit
)

// String returns a human-readable name for the choice.
func (c Choice) String() string {
	switch c {
	case ChoiceTTS:
		return "text-to-speech"
	case ChoiceSTT:
		return "speech-to-text"
	case ChoiceVoiceChat:
		return "voice chat"
	case ChoiceQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// MenuParser matches typed menu input to choices using digits and keyword
// aliases, so "1", "tts", and "speak" all land on the same action.
type MenuParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	choice Choice
}

// NewMenuParser creates a keyword-based menu parser.
func NewMenuParser(log *logger.Logger) *MenuParser {
	p := &MenuParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(1|tts|speak|say|text.?to.?speech|synthesi[sz]e)$`), ChoiceTTS},
		{regexp.MustCompile(`(?i)^(2|stt|listen|recogni[sz]e|speech.?to.?text|transcribe)$`), ChoiceSTT},
		{regexp.MustCompile(`(?i)^(3|chat|talk|voice.?chat|converse)$`), ChoiceVoiceChat},
		{regexp.MustCompile(`(?i)^(4|q|quit|exit|stop|bye|goodbye)$`), ChoiceQuit},
	}
	return p
}

// Parse converts menu input into a choice. Anything unmatched returns
// ChoiceUnknown so the caller can re-prompt.
func (p *MenuParser) Parse(input string) Choice {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ChoiceUnknown
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched menu choice: %s", rule.choice)
			return rule.choice
		}
	}

	p.log.Debug("no menu match for %q", trimmed)
	return ChoiceUnknown
}

// IsExit reports whether a recognized utterance means the user wants to end
// the voice chat. Recognition results often arrive capitalized with trailing
// punctuation ("Exit."), so both are stripped before comparing.
func IsExit(text string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = strings.TrimRight(cleaned, ".!?")
	switch cleaned {
	case "exit", "quit", "goodbye", "stop":
		return true
	}
	return false
}
