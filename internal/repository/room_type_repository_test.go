package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nartchai/hotel-management-api/internal/model"
)

func newMockDB(t *testing.T) (*RoomTypeRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mk, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRoomTypeRepository(db), mk
}

var roomTypeCols = []string{"id", "name", "description", "base_price", "max_occupancy",
	"amenities", "created_at", "updated_at"}

func TestRoomTypeGetByIDDecodesAmenities(t *testing.T) {
	repo, mk := newMockDB(t)
	now := time.Now()

	mk.ExpectQuery(`FROM room_types WHERE id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(roomTypeCols).
			AddRow(1, "Deluxe", "big room", 120.0, 2, []byte(`["wifi","minibar"]`), now, now))

	rt, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Deluxe", rt.Name)
	assert.Equal(t, []string{"wifi", "minibar"}, rt.Amenities)
}

func TestRoomTypeGetByIDNotFound(t *testing.T) {
	repo, mk := newMockDB(t)

	mk.ExpectQuery(`FROM room_types WHERE id = \?`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(roomTypeCols))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRoomTypeNotFound)
}

func TestRoomTypeCreateDuplicateName(t *testing.T) {
	repo, mk := newMockDB(t)

	mk.ExpectExec(`INSERT INTO room_types`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), &model.RoomType{
		Name: "Deluxe", BasePrice: 120, MaxOccupancy: 2, Amenities: []string{"wifi"},
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRoomTypeDeleteInUse(t *testing.T) {
	repo, mk := newMockDB(t)

	mk.ExpectExec(`DELETE FROM room_types`).
		WithArgs(int64(1)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

	err := repo.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1452}))
	assert.True(t, IsForeignKeyViolation(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsForeignKeyViolation(assert.AnError))
}
