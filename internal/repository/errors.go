package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors returned by repositories. Handlers map these to HTTP
// status codes; anything else is treated as a storage failure.
var (
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrConflict         = errors.New("conflict")
)

// IsDuplicateEntry reports whether err is a MySQL duplicate-key violation
// (error 1062), raised by the unique keys on emails, room numbers, type
// names, booking/room pairs and booking payments.
func IsDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// IsForeignKeyViolation reports whether err is a MySQL foreign-key failure
// (error 1452), raised when an insert references a missing parent row.
func IsForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1452
}

// isFKDeleteRestricted reports whether err is MySQL error 1451, raised when
// deleting a row that child rows still reference.
func isFKDeleteRestricted(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1451
}
