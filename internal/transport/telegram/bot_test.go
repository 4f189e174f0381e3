package telegram

import (
	"strings"
	"testing"
)

func TestCallbackID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"\fDICCIONARIO|", "DICCIONARIO"},
		{"\fVER_EVENTOS", "VER_EVENTOS"},
		{"DICHO", "DICHO"},
		{" DICHO \n", "DICHO"},
	}
	for _, tt := range tests {
		if got := callbackID(tt.in); got != tt.want {
			t.Errorf("callbackID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecipient(t *testing.T) {
	to, err := recipient("telegram-12345")
	if err != nil {
		t.Fatalf("recipient: %v", err)
	}
	if to.Recipient() != "12345" {
		t.Errorf("Recipient() = %q, want %q", to.Recipient(), "12345")
	}

	if _, err := recipient("573001112233"); err == nil {
		t.Error("expected error for non-telegram user id")
	}
}

func TestSplitText(t *testing.T) {
	short := "hola"
	if got := splitText(short, 10); len(got) != 1 || got[0] != short {
		t.Errorf("splitText(short) = %v", got)
	}

	long := strings.Repeat("línea\n", 2000)
	chunks := splitText(long, maxMsgLen)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > maxMsgLen {
			t.Errorf("chunk %d exceeds limit: %d", i, len(c))
		}
	}
}
