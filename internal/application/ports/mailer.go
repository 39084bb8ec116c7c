package ports

import "context"

// Email mensaje con cuerpo de texto y HTML.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer puerto de envío de correo (SMTP en producción).
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}
