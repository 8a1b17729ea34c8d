package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/nartchai/hotel-management-api/internal/model"
)

// BookingRepository provides access to the bookings and room_bookings
// tables. Writes that must stay consistent with room price snapshots run
// inside a caller-owned transaction via the *Tx methods.
type BookingRepository struct {
	DB *sql.DB
}

// NewBookingRepository creates a new BookingRepository instance.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

const bookingSelect = `SELECT b.id, b.customer_id, b.check_in_date, b.check_out_date, b.total_amount,
	b.status, b.special_requests, b.created_at, b.updated_at,
	CONCAT(c.first_name, ' ', c.last_name), c.email, c.phone, c.address
FROM bookings b
JOIN customers c ON c.id = b.customer_id`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	var requests, phone, address sql.NullString
	err := row.Scan(&b.ID, &b.CustomerID, &b.CheckInDate, &b.CheckOutDate, &b.TotalAmount,
		&b.Status, &requests, &b.CreatedAt, &b.UpdatedAt, &b.CustomerName, &b.CustomerEmail,
		&phone, &address)
	if err != nil {
		return nil, err
	}
	b.SpecialRequests = requests.String
	b.CustomerPhone = phone.String
	b.CustomerAddress = address.String
	return &b, nil
}

// GetAll returns every booking with customer info, newest first. Room sets
// are attached in a second query keyed by booking ID.
func (r *BookingRepository) GetAll(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, bookingSelect+` ORDER BY b.created_at DESC, b.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, r.attachRooms(ctx, out)
}

// GetByID returns one booking with its room set, or ErrBookingNotFound.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	row := r.DB.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	rooms, err := r.roomsFor(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Rooms = rooms
	return b, nil
}

// GetByCustomer returns a customer's bookings, newest first.
func (r *BookingRepository) GetByCustomer(ctx context.Context, customerID int64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, bookingSelect+` WHERE b.customer_id = ? ORDER BY b.created_at DESC, b.id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, r.attachRooms(ctx, out)
}

// GetByRoom returns every booking a room is assigned to, newest first.
func (r *BookingRepository) GetByRoom(ctx context.Context, roomID int64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		bookingSelect+`
		JOIN room_bookings rb ON rb.booking_id = b.id
		WHERE rb.room_id = ?
		ORDER BY b.created_at DESC, b.id DESC`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, r.attachRooms(ctx, out)
}

// roomsFor loads the room set of one booking with its price snapshots.
func (r *BookingRepository) roomsFor(ctx context.Context, bookingID int64) ([]model.BookedRoom, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT rb.room_id, rm.room_number, rt.name, rm.floor, rb.price_per_night
		FROM room_bookings rb
		JOIN rooms rm ON rm.id = rb.room_id
		JOIN room_types rt ON rt.id = rm.room_type_id
		WHERE rb.booking_id = ?
		ORDER BY rm.room_number`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookedRoom{}
	for rows.Next() {
		var br model.BookedRoom
		if err := rows.Scan(&br.RoomID, &br.RoomNumber, &br.TypeName, &br.Floor, &br.PricePerNight); err != nil {
			return nil, err
		}
		out = append(out, br)
	}
	return out, rows.Err()
}

// attachRooms fills the Rooms field of each booking in one IN query.
func (r *BookingRepository) attachRooms(ctx context.Context, bookings []model.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(bookings)), ",")
	args := make([]any, len(bookings))
	index := make(map[int64]int, len(bookings))
	for i := range bookings {
		args[i] = bookings[i].ID
		index[bookings[i].ID] = i
		bookings[i].Rooms = []model.BookedRoom{}
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT rb.booking_id, rb.room_id, rm.room_number, rt.name, rm.floor, rb.price_per_night
		FROM room_bookings rb
		JOIN rooms rm ON rm.id = rb.room_id
		JOIN room_types rt ON rt.id = rm.room_type_id
		WHERE rb.booking_id IN (`+placeholders+`)
		ORDER BY rm.room_number`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID int64
		var br model.BookedRoom
		if err := rows.Scan(&bookingID, &br.RoomID, &br.RoomNumber, &br.TypeName, &br.Floor, &br.PricePerNight); err != nil {
			return err
		}
		if i, ok := index[bookingID]; ok {
			bookings[i].Rooms = append(bookings[i].Rooms, br)
		}
	}
	return rows.Err()
}

// CreateTx inserts the booking row inside tx and returns its new ID.
func (r *BookingRepository) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (customer_id, check_in_date, check_out_date, total_amount, status, special_requests)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.CustomerID, b.CheckInDate, b.CheckOutDate, b.TotalAmount, b.Status, b.SpecialRequests,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return 0, ErrCustomerNotFound
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateFieldsTx applies a partial update to the booking row inside tx with
// COALESCE semantics. It does not touch the room set or the total. A
// customerID pointing at a missing customer maps to ErrCustomerNotFound.
func (r *BookingRepository) UpdateFieldsTx(ctx context.Context, tx *sql.Tx, id int64, customerID *int64, checkIn, checkOut *time.Time, status, specialRequests *string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET
			customer_id = COALESCE(?, customer_id),
			check_in_date = COALESCE(?, check_in_date),
			check_out_date = COALESCE(?, check_out_date),
			status = COALESCE(?, status),
			special_requests = COALESCE(?, special_requests)
		WHERE id = ?`,
		customerID, checkIn, checkOut, status, specialRequests, id,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return ErrCustomerNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&one); err == sql.ErrNoRows {
			return ErrBookingNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// SetTotalTx writes the derived total inside tx.
func (r *BookingRepository) SetTotalTx(ctx context.Context, tx *sql.Tx, id int64, total float64) error {
	_, err := tx.ExecContext(ctx, `UPDATE bookings SET total_amount = ? WHERE id = ?`, total, id)
	return err
}

// SetStatusTx updates only the lifecycle status inside tx.
func (r *BookingRepository) SetStatusTx(ctx context.Context, tx *sql.Tx, id int64, status string) error {
	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&one); err == sql.ErrNoRows {
			return ErrBookingNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// GetForUpdateTx loads the booking row inside tx with a row lock, or
// ErrBookingNotFound. Customer join fields are left empty.
func (r *BookingRepository) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id int64) (*model.Booking, error) {
	var b model.Booking
	var requests sql.NullString
	err := tx.QueryRowContext(ctx,
		`SELECT id, customer_id, check_in_date, check_out_date, total_amount, status, special_requests, created_at, updated_at
		FROM bookings WHERE id = ? FOR UPDATE`, id).
		Scan(&b.ID, &b.CustomerID, &b.CheckInDate, &b.CheckOutDate, &b.TotalAmount,
			&b.Status, &requests, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	b.SpecialRequests = requests.String
	return &b, nil
}

// AddRoomTx inserts one assignment row with the given price snapshot inside
// tx. A duplicate pair maps to ErrConflict, a missing parent to the
// corresponding not-found error.
func (r *BookingRepository) AddRoomTx(ctx context.Context, tx *sql.Tx, bookingID, roomID int64, pricePerNight float64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO room_bookings (booking_id, room_id, price_per_night) VALUES (?, ?, ?)`,
		bookingID, roomID, pricePerNight,
	)
	switch {
	case err == nil:
		return nil
	case IsDuplicateEntry(err):
		return ErrConflict
	case IsForeignKeyViolation(err):
		return ErrRoomNotFound
	}
	return err
}

// RemoveRoomTx deletes one assignment row inside tx. Returns ErrRoomNotFound
// when the pair does not exist.
func (r *BookingRepository) RemoveRoomTx(ctx context.Context, tx *sql.Tx, bookingID, roomID int64) error {
	res, err := tx.ExecContext(ctx,
		`DELETE FROM room_bookings WHERE booking_id = ? AND room_id = ?`, bookingID, roomID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// ClearRoomsTx deletes every assignment of a booking inside tx, used when an
// update replaces the room set.
func (r *BookingRepository) ClearRoomsTx(ctx context.Context, tx *sql.Tx, bookingID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM room_bookings WHERE booking_id = ?`, bookingID)
	return err
}

// SnapshotsTx returns the current assignment snapshots of a booking inside
// tx, locked for the duration of the transaction.
func (r *BookingRepository) SnapshotsTx(ctx context.Context, tx *sql.Tx, bookingID int64) ([]model.RoomBooking, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, booking_id, room_id, price_per_night, created_at
		FROM room_bookings WHERE booking_id = ? FOR UPDATE`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RoomBooking{}
	for rows.Next() {
		var rb model.RoomBooking
		if err := rows.Scan(&rb.ID, &rb.BookingID, &rb.RoomID, &rb.PricePerNight, &rb.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rb)
	}
	return out, rows.Err()
}

// Delete removes a booking. Assignments cascade; an existing payment keeps
// the row alive through its foreign key, surfaced as ErrConflict.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		if isFKDeleteRestricted(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
