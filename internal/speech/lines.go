// Package speech — lines.go centralises every spoken string.
// Edit this file to change the assistant's personality. Keep lines short
// and direct; the TTS engine handles inflection.
package speech

// ── Voice chat ───────────────────────────────────────────────────

func LineWelcome() string {
	return "Hello! I'm your AI assistant. You can start speaking when you see 'Listening'. Say 'exit' when you're done."
}

func LineGoodbye() string {
	return "Goodbye! Have a great day!"
}

func LineChatError() string {
	return "I encountered an error processing your request. Please try again."
}

// ── Speech recognition ───────────────────────────────────────────

func LineListening() string {
	return "I'm listening. Please speak."
}

func LineHeard(text string) string {
	return "I heard you say: " + text
}

func LineNoMatch() string {
	return "Sorry, I couldn't understand that. Please try speaking again."
}

func LineRecognitionTrouble() string {
	return "Sorry, there was an issue with speech recognition. Please try again."
}
