package repository

import (
	"context"
	"database/sql"

	"github.com/nartchai/hotel-management-api/internal/model"
)

// CustomerRepository provides access to the customers table.
type CustomerRepository struct {
	DB *sql.DB
}

// NewCustomerRepository creates a new CustomerRepository instance.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, first_name, last_name, email, phone, address, id_type, id_number, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }) (*model.Customer, error) {
	var c model.Customer
	var phone, address, idType, idNumber sql.NullString
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &phone, &address, &idType, &idNumber, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Phone = phone.String
	c.Address = address.String
	c.IDType = idType.String
	c.IDNumber = idNumber.String
	return &c, nil
}

// GetAll returns every customer ordered by last then first name.
func (r *CustomerRepository) GetAll(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// GetByID returns one customer or ErrCustomerNotFound.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	return c, err
}

// ExistsTx reports whether the customer exists, inside tx.
func (r *CustomerRepository) ExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM customers WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a customer and returns its new ID. A duplicate email maps
// to ErrConflict.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO customers (first_name, last_name, email, phone, address, id_type, id_number) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.IDType, c.IDNumber,
	)
	if err != nil {
		if IsDuplicateEntry(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies a partial update with COALESCE semantics.
func (r *CustomerRepository) Update(ctx context.Context, id int64, firstName, lastName, email, phone, address, idType, idNumber *string) (*model.Customer, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE customers SET
			first_name = COALESCE(?, first_name),
			last_name = COALESCE(?, last_name),
			email = COALESCE(?, email),
			phone = COALESCE(?, phone),
			address = COALESCE(?, address),
			id_type = COALESCE(?, id_type),
			id_number = COALESCE(?, id_number)
		WHERE id = ?`,
		firstName, lastName, email, phone, address, idType, idNumber, id,
	)
	if err != nil {
		if IsDuplicateEntry(err) {
			return nil, ErrConflict
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

// Delete removes a customer. Bookings or reviews referencing them surface as
// ErrConflict through foreign keys.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		if isFKDeleteRestricted(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
