package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/nartchai/hotel-management-api/internal/model"
)

// RoomTypeRepository provides access to the room_types table.
type RoomTypeRepository struct {
	DB *sql.DB
}

// NewRoomTypeRepository creates a new RoomTypeRepository instance.
func NewRoomTypeRepository(db *sql.DB) *RoomTypeRepository {
	return &RoomTypeRepository{DB: db}
}

const roomTypeColumns = `id, name, description, base_price, max_occupancy, amenities, created_at, updated_at`

// scanRoomType reads one row into a RoomType, decoding the amenities JSON.
func scanRoomType(row interface{ Scan(...any) error }) (*model.RoomType, error) {
	var rt model.RoomType
	var desc sql.NullString
	var amenities []byte
	err := row.Scan(&rt.ID, &rt.Name, &desc, &rt.BasePrice, &rt.MaxOccupancy, &amenities, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rt.Description = desc.String
	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &rt.Amenities); err != nil {
			return nil, err
		}
	}
	if rt.Amenities == nil {
		rt.Amenities = []string{}
	}
	return &rt, nil
}

// GetAll returns every room type ordered by ID.
func (r *RoomTypeRepository) GetAll(ctx context.Context) ([]model.RoomType, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+roomTypeColumns+` FROM room_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RoomType{}
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rt)
	}
	return out, rows.Err()
}

// GetByID returns one room type or ErrRoomTypeNotFound.
func (r *RoomTypeRepository) GetByID(ctx context.Context, id int64) (*model.RoomType, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+roomTypeColumns+` FROM room_types WHERE id = ?`, id)
	rt, err := scanRoomType(row)
	if err == sql.ErrNoRows {
		return nil, ErrRoomTypeNotFound
	}
	return rt, err
}

// Create inserts a room type and returns its new ID. A duplicate name maps
// to ErrConflict.
func (r *RoomTypeRepository) Create(ctx context.Context, rt *model.RoomType) (int64, error) {
	amenities, err := json.Marshal(rt.Amenities)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO room_types (name, description, base_price, max_occupancy, amenities) VALUES (?, ?, ?, ?, ?)`,
		rt.Name, rt.Description, rt.BasePrice, rt.MaxOccupancy, amenities,
	)
	if err != nil {
		if IsDuplicateEntry(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies a partial update. Nil pointers keep the current value via
// COALESCE. Returns ErrRoomTypeNotFound when the row does not exist.
func (r *RoomTypeRepository) Update(ctx context.Context, id int64, name, description *string, basePrice *float64, maxOccupancy *int, amenities []string) (*model.RoomType, error) {
	var amenitiesJSON any
	if amenities != nil {
		b, err := json.Marshal(amenities)
		if err != nil {
			return nil, err
		}
		amenitiesJSON = b
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE room_types SET
			name = COALESCE(?, name),
			description = COALESCE(?, description),
			base_price = COALESCE(?, base_price),
			max_occupancy = COALESCE(?, max_occupancy),
			amenities = COALESCE(?, amenities)
		WHERE id = ?`,
		name, description, basePrice, maxOccupancy, amenitiesJSON, id,
	)
	if err != nil {
		if IsDuplicateEntry(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op update,
		// so confirm existence with a read.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a room type. Rooms referencing it make the delete fail with
// ErrConflict through the foreign key.
func (r *RoomTypeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM room_types WHERE id = ?`, id)
	if err != nil {
		if isFKDeleteRestricted(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}
