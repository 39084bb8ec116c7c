package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/listing"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

const reviewColumns = `r.id, r.product_id, COALESCE(p.name, ''), r.user_id, COALESCE(u.name, ''),
	r.rating, r.comment, r.created_at`

const reviewFrom = `reviews r LEFT JOIN products p ON p.id = r.product_id LEFT JOIN users u ON u.id = r.user_id`

var reviewList = listSQL{
	columns: reviewColumns,
	from:    reviewFrom,
	alias:   "r",
	filters: map[string]string{
		"rating":     "r.rating::text",
		"product_id": "r.product_id::text",
	},
	search: []string{"r.comment", "p.name"},
}

// ReviewRepo reseñas de productos.
type ReviewRepo struct {
	q Querier
}

func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	var rv entity.Review
	var rating int16
	err := row.Scan(&rv.ID, &rv.ProductID, &rv.ProductName, &rv.UserID, &rv.UserName, &rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		return nil, err
	}
	rv.Rating = int(rating)
	return &rv, nil
}

// Create falla con ErrDuplicate si el usuario ya reseñó el producto.
func (r *ReviewRepo) Create(ctx context.Context, rv *entity.Review) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storeErr("insert review", err)
	}
	return nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	rv, err := scanReview(r.q.QueryRow(ctx, `SELECT `+reviewColumns+` FROM `+reviewFrom+` WHERE r.id = $1`, id))
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, storeErr("get review", err)
	}
	return rv, nil
}

func (r *ReviewRepo) List(ctx context.Context, q listing.Query) ([]*entity.Review, int, error) {
	rows, total, err := reviewList.run(ctx, r.q, "list reviews", q, nil)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Review, 0, q.Limit)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, storeErr("scan review", err)
		}
		list = append(list, rv)
	}
	return list, total, rows.Err()
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, storeErr("delete review", err)
	}
	return tag.RowsAffected() > 0, nil
}
