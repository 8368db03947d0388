package mail

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSMTPMessageHeaders(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "localhost", Port: 25, From: "desk@example.com"})
	m := n.message("ada@example.com", "Password reset link", "https://desk/reset/abc")

	require.Equal(t, []string{"desk@example.com"}, m.GetHeader("From"))
	require.Equal(t, []string{"ada@example.com"}, m.GetHeader("To"))
	require.Equal(t, []string{"Password reset link"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "https://desk/reset/abc")
}

func TestSMTPSendHonoursCancelledContext(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "localhost", Port: 25})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Send(ctx, "ada@example.com", "s", "b")
	require.ErrorIs(t, err, context.Canceled)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &LogNotifier{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	require.NoError(t, n.Send(context.Background(), "ada@example.com", "Password reset link", "link"))
	out := buf.String()
	require.True(t, strings.Contains(out, `"to":"ada@example.com"`))
	require.Contains(t, out, "Password reset link")
}
