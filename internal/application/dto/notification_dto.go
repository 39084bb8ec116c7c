package dto

import "time"

// CreateNotificationRequest alta de notificación desde administración.
type CreateNotificationRequest struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Message       string   `json:"message" validate:"required"`
	IsImportant   bool     `json:"is_important"`
	TargetAll     bool     `json:"target_all"`
	TargetUserIDs []string `json:"target_user_ids"`
}

// ReadRequest cuerpo de PUT /notifications/:id/read.
type ReadRequest struct {
	IsRead bool `json:"is_read"`
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	IsRead        bool      `json:"is_read"`
	IsImportant   bool      `json:"is_important"`
	TargetAll     bool      `json:"target_all"`
	TargetUserIDs []string  `json:"target_user_ids"`
	CreatedAt     time.Time `json:"created_at"`
}
