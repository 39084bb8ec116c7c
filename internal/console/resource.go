package console

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
)

const adminPrefix = "/api/admin"

// EncodeQuery serializa q como query string. Page y limit en cero no se envían.
func EncodeQuery(q listing.Query) url.Values {
	q = q.Normalize()
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for field, value := range q.Filters {
		v.Set(field, value)
	}
	return v
}

// ResourceFetcher Fetcher del listado de administración de s.
// Los filtros se validan contra el esquema antes de salir a la red.
func ResourceFetcher[T any](c *Client, s resource.Schema) Fetcher[T] {
	return func(ctx context.Context, q listing.Query) (*dto.PageResponse[T], error) {
		q = q.Normalize()
		if err := s.ValidateFilters(q.Filters); err != nil {
			return nil, err
		}
		var out dto.PageResponse[T]
		if err := c.Do(ctx, fiber.MethodGet, adminPrefix+s.Path, EncodeQuery(q), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
}

// Get detalle de un elemento de s.
func Get[T any](ctx context.Context, c *Client, s resource.Schema, id string) (T, error) {
	var out T
	err := c.Do(ctx, fiber.MethodGet, adminPrefix+s.Path+"/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

// UpdateStatus cambia el estado de un elemento. Estados fuera del esquema no salen a la red.
func UpdateStatus[T any](ctx context.Context, c *Client, s resource.Schema, id, status string) (T, error) {
	var out T
	if !s.HasStatus() {
		return out, fmt.Errorf("%w: %s no tiene estado", domain.ErrInvalidInput, s.Name)
	}
	if !s.ValidStatus(status) {
		return out, fmt.Errorf("%w: estado %q no válido para %s", domain.ErrInvalidInput, status, s.Name)
	}
	path := adminPrefix + s.Path + "/" + url.PathEscape(id) + "/status"
	err := c.Do(ctx, fiber.MethodPut, path, nil, dto.StatusRequest{Status: status}, &out)
	return out, err
}

// Delete elimina un elemento de s.
func Delete(ctx context.Context, c *Client, s resource.Schema, id string) error {
	if !s.Deletable {
		return fmt.Errorf("%w: %s no admite borrado", domain.ErrInvalidInput, s.Name)
	}
	return c.Do(ctx, fiber.MethodDelete, adminPrefix+s.Path+"/"+url.PathEscape(id), nil, nil, nil)
}

// SetRead marca una notificación como leída o no leída.
func SetRead(ctx context.Context, c *Client, id string, read bool) (*dto.NotificationResponse, error) {
	var out dto.NotificationResponse
	path := adminPrefix + resource.Notifications.Path + "/" + url.PathEscape(id) + "/read"
	if err := c.Do(ctx, fiber.MethodPut, path, nil, dto.ReadRequest{IsRead: read}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateNotification alta de una notificación.
func CreateNotification(ctx context.Context, c *Client, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	var out dto.NotificationResponse
	if err := c.Do(ctx, fiber.MethodPost, adminPrefix+resource.Notifications.Path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StatusAction acción de modal que pasa el objetivo a status.
func StatusAction[T any](c *Client, s resource.Schema, id func(T) string, status string) Action[T] {
	return Action[T]{
		Name: status,
		Run: func(ctx context.Context, target T) error {
			_, err := UpdateStatus[T](ctx, c, s, id(target), status)
			return err
		},
	}
}

// DeleteAction acción de modal que elimina el objetivo.
func DeleteAction[T any](c *Client, s resource.Schema, id func(T) string) Action[T] {
	return Action[T]{
		Name: "delete",
		Run: func(ctx context.Context, target T) error {
			return Delete(ctx, c, s, id(target))
		},
	}
}

// ReadToggleAction invierte is_read de la notificación vista al abrir el modal y
// parchea el listado sin recargar. El parche fija el valor enviado al servidor.
func ReadToggleAction(c *Client) Action[dto.NotificationResponse] {
	return Action[dto.NotificationResponse]{
		Name: "toggle_read",
		Run: func(ctx context.Context, n dto.NotificationResponse) error {
			_, err := SetRead(ctx, c, n.ID, !n.IsRead)
			return err
		},
		Patch: func(target dto.NotificationResponse, n *dto.NotificationResponse) { n.IsRead = !target.IsRead },
	}
}
