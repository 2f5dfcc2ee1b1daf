package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestHubSlowClientClosesChannelOnce(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	client := &Client{Hub: h, UserID: uuid.New(), Send: make(chan []byte, 1)}
	h.register <- client

	// Fill the buffer so the next delivery hits the backpressure path.
	client.Send <- []byte("queued")

	assert.NotPanics(t, func() {
		h.Send(client.UserID, "ping", nil)
	})

	// The unregister branch removes the client and closes Send exactly once.
	deadline := time.Now().Add(2 * time.Second)
	for {
		h.mu.RLock()
		_, present := h.clients[client.UserID]
		h.mu.RUnlock()
		if !present {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("slow client was never unregistered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	<-client.Send // drain the queued frame
	_, open := <-client.Send
	assert.False(t, open, "Send should be closed after unregistration")
}
