package entity

import "time"

// Review calificación de un comprador sobre un producto. Rating es entero en [1,5].
type Review struct {
	ID          string
	ProductID   string
	ProductName string // solo lectura
	UserID      string
	UserName    string // solo lectura
	Rating      int
	Comment     string
	CreatedAt   time.Time
}

const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating indica si r está en el rango admitido.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
