package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Marketplace-api/pkg/sanitize"
)

func TestRichText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"vacío", "", ""},
		{"texto plano", "20% de descuento", "20% de descuento"},
		{"html seguro", "<p><strong>Oferta</strong></p>", "<p><strong>Oferta</strong></p>"},
		{"script", "<p>Hola</p><script>alert('x')</script>", "<p>Hola</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize.RichText(tt.in))
		})
	}
}

func TestRichText_QuitaEventos(t *testing.T) {
	out := sanitize.RichText(`<a href="https://example.com" onclick="x()">ver</a>`)
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "https://example.com")
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Muy bueno", sanitize.PlainText("  <b>Muy</b> bueno<script>x()</script> "))
}
