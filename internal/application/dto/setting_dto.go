package dto

import "time"

// SettingRequest cuerpo de PUT /settings/:key.
type SettingRequest struct {
	Value string `json:"value"`
}

// SettingResponse par clave-valor.
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
