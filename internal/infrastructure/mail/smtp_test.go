package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/pkg/config"
)

func TestNewMessage_Multipart(t *testing.T) {
	gm := newMessage("no-reply@shop.test", ports.Email{
		To: "ana@mail.test", Subject: "Hola", TextBody: "texto plano", HTMLBody: "<p>html</p>",
	})
	var buf bytes.Buffer
	_, err := gm.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "To: ana@mail.test")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "texto plano")
	assert.Contains(t, raw, "<p>html</p>")
}

func TestSend_ContextoCancelado(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "localhost", Port: 1, From: "x@shop.test"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, ports.Email{To: "a@b.c"}), context.Canceled)
}
