package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"plateful/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalHTTPPublisher_PublishAuthEvent(t *testing.T) {
	var received PubSubPushMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-123", r.Header.Get("X-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewLocalHTTPPublisher(srv.URL, logger)

	userID := uuid.NewString()
	event := &service.AuthEvent{
		Type:      service.EventUserRegistered,
		UserID:    userID,
		Email:     "test@example.com",
		RequestID: "req-123",
	}

	require.NoError(t, publisher.PublishAuthEvent(context.Background(), event))

	assert.Equal(t, service.EventUserRegistered, received.Message.Attributes["type"])
	assert.Equal(t, userID, received.Message.Attributes["user_id"])
	assert.Equal(t, "req-123", received.Message.Attributes["request_id"])
	assert.NotEmpty(t, received.Message.MessageID)

	// The payload travels base64-encoded, Pub/Sub push style.
	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var decoded service.AuthEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestLocalHTTPPublisher_ConsumerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewLocalHTTPPublisher(srv.URL, logger)

	err := publisher.PublishAuthEvent(context.Background(), &service.AuthEvent{
		Type:   service.EventAccountLinked,
		UserID: uuid.NewString(),
	})

	assert.Error(t, err)
}
