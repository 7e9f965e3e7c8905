package chat

import (
	"testing"

	"github.com/hammamikhairi/vocalis/internal/realtime"
)

func TestHistoryOrder(t *testing.T) {
	h := NewHistory("Be terse.")

	h.AddUser("hello")
	h.AddAssistant("hi there")
	h.AddUser("bye")

	msgs := h.Messages()
	if len(msgs) != 4 {
		t.Fatalf("len = %d, want 4", len(msgs))
	}
	if msgs[0].Role != realtime.RoleSystem || msgs[0].Content != "Be terse." {
		t.Errorf("system message = %+v", msgs[0])
	}
	wantRoles := []string{realtime.RoleSystem, realtime.RoleUser, realtime.RoleAssistant, realtime.RoleUser}
	for i, m := range msgs {
		if m.Role != wantRoles[i] {
			t.Errorf("message %d role = %s, want %s", i, m.Role, wantRoles[i])
		}
	}
}

func TestHistoryDefaultPrompt(t *testing.T) {
	h := NewHistory("")
	msgs := h.Messages()
	if len(msgs) != 1 || msgs[0].Content != DefaultSystemPrompt {
		t.Fatalf("messages = %+v", msgs)
	}
}

func TestHistoryMessagesIsACopy(t *testing.T) {
	h := NewHistory("")
	h.AddUser("original")

	msgs := h.Messages()
	msgs[1].Content = "mutated"

	if h.Messages()[1].Content != "original" {
		t.Fatal("Messages should return a copy, not the backing slice")
	}
}
