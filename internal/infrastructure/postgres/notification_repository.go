package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

var notificationList = listSQL{
	columns: `n.id, n.title, n.message, n.is_read, n.is_important, n.target_all, n.target_user_ids, n.created_at`,
	from:    "notifications n",
	alias:   "n",
	filters: map[string]string{
		"is_read":      "n.is_read::text",
		"is_important": "n.is_important::text",
	},
	search: []string{"n.title", "n.message"},
}

// NotificationRepo notificaciones del panel. Los destinatarios se guardan como TEXT[].
type NotificationRepo struct {
	q Querier
}

func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.IsRead, &n.IsImportant, &n.TargetAll, &n.TargetUserIDs, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	targets := n.TargetUserIDs
	if targets == nil {
		targets = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, title, message, is_read, is_important, target_all, target_user_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.Title, n.Message, n.IsRead, n.IsImportant, n.TargetAll, targets, n.CreatedAt,
	)
	if err != nil {
		return storeErr("insert notification", err)
	}
	return nil
}

func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := scanNotification(r.q.QueryRow(ctx,
		`SELECT `+notificationList.columns+` FROM notifications n WHERE n.id = $1`, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, storeErr("get notification", err)
	}
	return n, nil
}

func (r *NotificationRepo) scanList(rows pgx.Rows, limit int) ([]*entity.Notification, error) {
	defer rows.Close()
	list := make([]*entity.Notification, 0, limit)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, storeErr("scan notification", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *NotificationRepo) List(ctx context.Context, q listing.Query) ([]*entity.Notification, int, error) {
	rows, total, err := notificationList.run(ctx, r.q, "list notifications", q, nil)
	if err != nil {
		return nil, 0, err
	}
	list, err := r.scanList(rows, q.Limit)
	return list, total, err
}

// ListForUser notificaciones globales o dirigidas a userID.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID string, q listing.Query) ([]*entity.Notification, int, error) {
	var a args
	cond := fmt.Sprintf("(n.target_all OR %s = ANY(n.target_user_ids))", a.add(userID))
	rows, total, err := notificationList.run(ctx, r.q, "list user notifications", q, a, cond)
	if err != nil {
		return nil, 0, err
	}
	list, err := r.scanList(rows, q.Limit)
	return list, total, err
}

func (r *NotificationRepo) SetRead(ctx context.Context, id string, read bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = $2 WHERE id = $1`, id, read)
	if err != nil {
		return storeErr("update notification", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notificación %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *NotificationRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, storeErr("delete notification", err)
	}
	return tag.RowsAffected() > 0, nil
}
