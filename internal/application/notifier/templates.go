package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

// PasswordResetData datos del correo de restablecimiento.
type PasswordResetData struct {
	SiteName  string
	Name      string
	ResetURL  string
	ExpiresIn string
}

// TicketReplyData datos del aviso de respuesta en un ticket.
type TicketReplyData struct {
	SiteName   string
	Name       string
	Subject    string
	AuthorName string
	Message    string
}

var (
	resetHTML = template.Must(template.New("reset").Parse(layoutOpen + `
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Hola {{.Name}},</p>
              <p style="margin: 0 0 24px; font-size: 15px; color: #374151; line-height: 1.5;">
                Recibimos una solicitud para restablecer tu contraseña.
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.ResetURL}}" style="display: inline-block; padding: 14px 32px; background-color: #00467f; color: #ffffff; text-decoration: none; font-size: 16px; border-radius: 6px;">
                      Restablecer contraseña
                    </a>
                  </td>
                </tr>
              </table>
              <p style="margin: 24px 0 0; font-size: 13px; color: #9ca3af; text-align: center;">
                El enlace vence en {{.ExpiresIn}}. Si no lo pediste, ignora este correo.
              </p>` + layoutClose))

	ticketHTML = template.Must(template.New("ticket").Parse(layoutOpen + `
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Hola {{.Name}},</p>
              <p style="margin: 0 0 16px; font-size: 15px; color: #374151;">
                {{.AuthorName}} respondió a tu ticket <strong>{{.Subject}}</strong>:
              </p>
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 16px; font-size: 14px; color: #1f2937; white-space: pre-wrap;">{{.Message}}</div>` + layoutClose))
)

const layoutOpen = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.SiteName}}</title></head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 520px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 24px 32px; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 22px; color: #00467f;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">`

const layoutClose = `
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.String()
}

// BuildPasswordResetEmail correo con el enlace de restablecimiento (texto + HTML).
func BuildPasswordResetEmail(to string, data PasswordResetData) ports.Email {
	var text bytes.Buffer
	fmt.Fprintf(&text, "Hola %s,\n\n", data.Name)
	text.WriteString("Recibimos una solicitud para restablecer tu contraseña. Abre este enlace:\n")
	text.WriteString(data.ResetURL + "\n\n")
	fmt.Fprintf(&text, "El enlace vence en %s. Si no lo pediste, ignora este correo.\n", data.ExpiresIn)
	return ports.Email{
		To:       to,
		Subject:  fmt.Sprintf("%s: restablece tu contraseña", data.SiteName),
		TextBody: text.String(),
		HTMLBody: render(resetHTML, data),
	}
}

// BuildTicketReplyEmail aviso al dueño del ticket.
func BuildTicketReplyEmail(to string, data TicketReplyData) ports.Email {
	var text bytes.Buffer
	fmt.Fprintf(&text, "Hola %s,\n\n", data.Name)
	fmt.Fprintf(&text, "%s respondió a tu ticket \"%s\":\n\n", data.AuthorName, data.Subject)
	text.WriteString(data.Message + "\n")
	return ports.Email{
		To:       to,
		Subject:  fmt.Sprintf("[%s] Nueva respuesta: %s", data.SiteName, data.Subject),
		TextBody: text.String(),
		HTMLBody: render(ticketHTML, data),
	}
}

// humanDuration "1 hora", "30 minutos".
func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", h)
	default:
		m := int(d.Round(time.Minute) / time.Minute)
		if m == 1 {
			return "1 minuto"
		}
		return fmt.Sprintf("%d minutos", m)
	}
}
