package whatsapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/caliando/internal/config"
	"github.com/sandevgo/caliando/internal/core"
)

type recordingHandler struct {
	mu   sync.Mutex
	msgs []core.InboundMessage
	done chan struct{}
}

func newRecordingHandler(expect int) *recordingHandler {
	return &recordingHandler{done: make(chan struct{}, expect)}
}

func (h *recordingHandler) HandleMessage(_ context.Context, msg core.InboundMessage) {
	h.mu.Lock()
	h.msgs = append(h.msgs, msg)
	h.mu.Unlock()
	h.done <- struct{}{}
}

func (h *recordingHandler) wait(t *testing.T, n int) []core.InboundMessage {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-h.done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for dispatched messages")
		}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]core.InboundMessage(nil), h.msgs...)
}

func newTestWebhook(handler Handler) *Webhook {
	return NewWebhook(context.Background(),
		&config.AppConfig{Port: 0},
		&config.WhatsAppConfig{VerifyToken: "sesame"},
		handler,
	)
}

func TestVerifyHandshake(t *testing.T) {
	w := newTestWebhook(newRecordingHandler(0))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=sesame&hub.challenge=42", nil)
	w.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())
}

func TestVerifyHandshakeWrongToken(t *testing.T) {
	w := newTestWebhook(newRecordingHandler(0))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=42", nil)
	w.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReceiveTextMessage(t *testing.T) {
	h := newRecordingHandler(1)
	w := newTestWebhook(h)

	payload := `{
		"entry": [{"changes": [{"value": {"messages": [
			{"from": "573001112233", "type": "text", "text": {"body": "Hola"}}
		]}}]}
	]}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	msgs := h.wait(t, 1)
	require.Len(t, msgs, 1)
	assert.Equal(t, "573001112233", msgs[0].UserID)
	assert.Equal(t, core.KindText, msgs[0].Kind)
	assert.Equal(t, "Hola", msgs[0].Text)
}

func TestReceiveButtonReply(t *testing.T) {
	h := newRecordingHandler(1)
	w := newTestWebhook(h)

	payload := `{
		"entry": [{"changes": [{"value": {"messages": [
			{"from": "573001112233", "type": "interactive",
			 "interactive": {"button_reply": {"id": "DICCIONARIO", "title": "Diccionario"}}}
		]}}]}
	]}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	msgs := h.wait(t, 1)
	require.Len(t, msgs, 1)
	assert.Equal(t, core.KindButton, msgs[0].Kind)
	assert.Equal(t, "DICCIONARIO", msgs[0].ButtonID)
}

func TestReceiveIgnoresStatusCallbacks(t *testing.T) {
	h := newRecordingHandler(0)
	w := newTestWebhook(h)

	payload := `{"entry": [{"changes": [{"value": {"statuses": [{"status": "delivered"}]}}]}]}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, h.msgs)
}

func TestReceiveMalformedPayloadStillAcks(t *testing.T) {
	w := newTestWebhook(newRecordingHandler(0))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("not-json"))
	req.Header.Set("Content-Type", "application/json")
	w.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
