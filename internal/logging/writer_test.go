package logging

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterParsesTextHandlerOutput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := Subscribe(ctx)

	logger := slog.New(slog.NewTextHandler(NewWriter(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Warn("page request failed", "offset", 200, "status", 503)

	select {
	case ev := <-events:
		msg := ev.Payload
		assert.Equal(t, "warn", msg.Level)
		assert.Equal(t, "page request failed", msg.Message)
		assert.NotEmpty(t, msg.ID)
		require.Len(t, msg.Attributes, 2)
		assert.Equal(t, Attr{Key: "offset", Value: "200"}, msg.Attributes[0])
		assert.Equal(t, Attr{Key: "status", Value: "503"}, msg.Attributes[1])
	case <-time.After(time.Second):
		t.Fatal("no log event published")
	}
}

func TestWriterRejectsBadTime(t *testing.T) {
	_, err := NewWriter().Write([]byte("time=yesterday level=INFO msg=hi\n"))
	assert.Error(t, err)
}
