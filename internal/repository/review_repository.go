package repository

import (
	"context"
	"database/sql"

	"github.com/nartchai/hotel-management-api/internal/model"
)

// ReviewRepository provides access to the reviews table.
type ReviewRepository struct {
	DB *sql.DB
}

// NewReviewRepository creates a new ReviewRepository instance.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

const reviewSelect = `SELECT v.id, v.room_id, v.customer_id, v.rating, v.comment, v.created_at, v.updated_at,
	rm.room_number, CONCAT(c.first_name, ' ', c.last_name)
FROM reviews v
JOIN rooms rm ON rm.id = v.room_id
JOIN customers c ON c.id = v.customer_id`

func scanReview(row interface{ Scan(...any) error }) (*model.Review, error) {
	var rv model.Review
	var comment sql.NullString
	err := row.Scan(&rv.ID, &rv.RoomID, &rv.CustomerID, &rv.Rating, &comment,
		&rv.CreatedAt, &rv.UpdatedAt, &rv.RoomNumber, &rv.CustomerName)
	if err != nil {
		return nil, err
	}
	rv.Comment = comment.String
	return &rv, nil
}

// GetAll returns every review, newest first.
func (r *ReviewRepository) GetAll(ctx context.Context) ([]model.Review, error) {
	return r.list(ctx, reviewSelect+` ORDER BY v.created_at DESC, v.id DESC`)
}

// GetByRoom returns the reviews of one room, newest first.
func (r *ReviewRepository) GetByRoom(ctx context.Context, roomID int64) ([]model.Review, error) {
	return r.list(ctx, reviewSelect+` WHERE v.room_id = ? ORDER BY v.created_at DESC, v.id DESC`, roomID)
}

// GetByCustomer returns the reviews written by one customer, newest first.
func (r *ReviewRepository) GetByCustomer(ctx context.Context, customerID int64) ([]model.Review, error) {
	return r.list(ctx, reviewSelect+` WHERE v.customer_id = ? ORDER BY v.created_at DESC, v.id DESC`, customerID)
}

func (r *ReviewRepository) list(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	return out, rows.Err()
}

// GetByID returns one review or ErrReviewNotFound.
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	row := r.DB.QueryRowContext(ctx, reviewSelect+` WHERE v.id = ?`, id)
	rv, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	return rv, err
}

// Create inserts a review and returns its new ID. Missing parents surface
// through foreign keys.
func (r *ReviewRepository) Create(ctx context.Context, rv *model.Review) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO reviews (room_id, customer_id, rating, comment) VALUES (?, ?, ?, ?)`,
		rv.RoomID, rv.CustomerID, rv.Rating, rv.Comment,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return 0, ErrRoomNotFound
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies a partial update to rating and comment.
func (r *ReviewRepository) Update(ctx context.Context, id int64, rating *int, comment *string) (*model.Review, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE reviews SET
			rating = COALESCE(?, rating),
			comment = COALESCE(?, comment)
		WHERE id = ?`,
		rating, comment, id,
	)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}
