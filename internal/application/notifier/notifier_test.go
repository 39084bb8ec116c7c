package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

type fakeMailer struct{ sent []ports.Email }

func (f *fakeMailer) Send(_ context.Context, msg ports.Email) error {
	f.sent = append(f.sent, msg)
	return nil
}

func newTestNotifier(m ports.Mailer, now time.Time) *Notifier {
	n := New(m, func(context.Context) string { return "Marketplace" })
	n.now = func() time.Time { return now }
	return n
}

func TestHandlePasswordReset(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	m := &fakeMailer{}
	n := newTestNotifier(m, now)

	body, _ := json.Marshal(ports.PasswordResetRequestedEvent{
		UserID: "u1", Email: "ana@mail.test", Name: "Ana",
		ResetURL: "https://shop.test/reset-password?token=abc", ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, n.HandlePasswordReset(context.Background(), body))
	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, "ana@mail.test", msg.To)
	assert.Contains(t, msg.TextBody, "https://shop.test/reset-password?token=abc")
	assert.Contains(t, msg.TextBody, "1 hora")
	assert.Contains(t, msg.HTMLBody, `href="https://shop.test/reset-password?token=abc"`)
}

func TestHandlePasswordReset_VencidoNoEnvia(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	m := &fakeMailer{}
	body, _ := json.Marshal(ports.PasswordResetRequestedEvent{Email: "a@b.c", ExpiresAt: now.Add(-time.Minute)})
	require.NoError(t, newTestNotifier(m, now).HandlePasswordReset(context.Background(), body))
	assert.Empty(t, m.sent)
}

func TestHandleTicketResponded_EscapaHTML(t *testing.T) {
	m := &fakeMailer{}
	body, _ := json.Marshal(ports.TicketRespondedEvent{
		TicketID: "t1", Subject: "Pago", UserEmail: "ana@mail.test", UserName: "Ana",
		AuthorName: "Soporte", Message: "<script>x</script> revisado",
	})
	require.NoError(t, newTestNotifier(m, time.Now()).HandleTicketResponded(context.Background(), body))
	require.Len(t, m.sent, 1)
	assert.NotContains(t, m.sent[0].HTMLBody, "<script>")
	assert.Contains(t, m.sent[0].Subject, "Pago")
}

func TestHandlers_JSONInvalido(t *testing.T) {
	n := newTestNotifier(&fakeMailer{}, time.Now())
	for topic, h := range n.Handlers() {
		assert.Error(t, h(context.Background(), []byte("{")), topic)
	}
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 hora", humanDuration(time.Hour))
	assert.Equal(t, "2 horas", humanDuration(2*time.Hour))
	assert.Equal(t, "30 minutos", humanDuration(30*time.Minute))
	assert.Equal(t, "59 minutos", humanDuration(59*time.Minute+10*time.Second))
}
