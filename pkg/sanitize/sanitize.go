// Package sanitize limpia el texto generado por usuarios (mensajes de notificación,
// respuestas de tickets, comentarios de reseñas) antes de persistirlo.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// RichText conserva el HTML seguro (negritas, listas, enlaces con rel="nofollow")
// y elimina scripts, estilos y atributos de eventos.
func RichText(s string) string {
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// PlainText elimina todas las etiquetas HTML.
func PlainText(s string) string {
	return strings.TrimSpace(plainPolicy.Sanitize(s))
}
