package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nartchai/hotel-management-api/internal/model"
)

// RoomRepository provides access to the rooms table.
type RoomRepository struct {
	DB *sql.DB
}

// NewRoomRepository creates a new RoomRepository instance.
func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{DB: db}
}

const roomSelect = `SELECT r.id, r.room_number, r.room_type_id, r.floor, r.status, r.price_per_night,
	r.created_at, r.updated_at, rt.name
FROM rooms r
JOIN room_types rt ON rt.id = r.room_type_id`

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
	var rm model.Room
	err := row.Scan(&rm.ID, &rm.RoomNumber, &rm.RoomTypeID, &rm.Floor, &rm.Status,
		&rm.PricePerNight, &rm.CreatedAt, &rm.UpdatedAt, &rm.TypeName)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// GetAll returns every room joined with its type name, ordered by room number.
func (r *RoomRepository) GetAll(ctx context.Context) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx, roomSelect+` ORDER BY r.room_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rm)
	}
	return out, rows.Err()
}

// GetByType returns every room of one room type, ordered by room number.
func (r *RoomRepository) GetByType(ctx context.Context, roomTypeID int64) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx, roomSelect+` WHERE r.room_type_id = ? ORDER BY r.room_number`, roomTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rm)
	}
	return out, rows.Err()
}

// GetByID returns one room or ErrRoomNotFound.
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	row := r.DB.QueryRowContext(ctx, roomSelect+` WHERE r.id = ?`, id)
	rm, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	return rm, err
}

// GetByIDsTx loads the rooms with the given IDs inside tx, keyed by ID.
// Missing IDs are simply absent from the map; callers decide whether that is
// an error. FOR UPDATE locks the price rows until the transaction ends so the
// snapshot taken from them is consistent.
func (r *RoomRepository) GetByIDsTx(ctx context.Context, tx *sql.Tx, ids []int64) (map[int64]model.Room, error) {
	if len(ids) == 0 {
		return map[int64]model.Room{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := tx.QueryContext(ctx,
		`SELECT id, room_number, room_type_id, floor, status, price_per_night, created_at, updated_at
		FROM rooms WHERE id IN (`+placeholders+`) FOR UPDATE`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]model.Room, len(ids))
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.RoomNumber, &rm.RoomTypeID, &rm.Floor, &rm.Status,
			&rm.PricePerNight, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out[rm.ID] = rm
	}
	return out, rows.Err()
}

// Create inserts a room and returns its new ID. A duplicate room number maps
// to ErrConflict and a missing room type to ErrRoomTypeNotFound.
func (r *RoomRepository) Create(ctx context.Context, rm *model.Room) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO rooms (room_number, room_type_id, floor, status, price_per_night) VALUES (?, ?, ?, ?, ?)`,
		rm.RoomNumber, rm.RoomTypeID, rm.Floor, rm.Status, rm.PricePerNight,
	)
	if err != nil {
		switch {
		case IsDuplicateEntry(err):
			return 0, ErrConflict
		case IsForeignKeyViolation(err):
			return 0, ErrRoomTypeNotFound
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies a partial update with COALESCE semantics and returns the
// fresh row.
func (r *RoomRepository) Update(ctx context.Context, id int64, roomNumber *string, roomTypeID *int64, floor *int, status *string, pricePerNight *float64) (*model.Room, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE rooms SET
			room_number = COALESCE(?, room_number),
			room_type_id = COALESCE(?, room_type_id),
			floor = COALESCE(?, floor),
			status = COALESCE(?, status),
			price_per_night = COALESCE(?, price_per_night)
		WHERE id = ?`,
		roomNumber, roomTypeID, floor, status, pricePerNight, id,
	)
	if err != nil {
		switch {
		case IsDuplicateEntry(err):
			return nil, ErrConflict
		case IsForeignKeyViolation(err):
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a room. Existing assignments or reviews keep the row alive
// through foreign keys, surfaced as ErrConflict.
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		if isFKDeleteRestricted(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
