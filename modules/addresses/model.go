package addresses

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/modules/database"
)

// Address is one row of the listing.
type Address struct {
	ID         int64
	Address    string
	District   string
	City       string
	PostalCode string
	Phone      string
}

// Schema creates the tables the command reads, for databases that do not
// carry them already.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS city (
		city_id INTEGER PRIMARY KEY,
		city TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS address (
		address_id INTEGER PRIMARY KEY,
		address TEXT NOT NULL,
		district TEXT NOT NULL DEFAULT '',
		city_id INTEGER NOT NULL REFERENCES city (city_id),
		postal_code TEXT,
		phone TEXT NOT NULL DEFAULT ''
	)`,
}

// Model reads addresses from db. Driver selects the placeholder dialect.
type Model struct {
	DB     *sql.DB
	Driver string
}

// EnsureSchema runs Schema.
func (m Model) EnsureSchema(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := m.DB.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to create address schema")
		}
	}
	return nil
}

// Last returns the newest limit addresses with their city names.
func (m Model) Last(ctx context.Context, limit int) ([]Address, error) {
	query := fmt.Sprintf(`SELECT a.address_id, a.address, a.district, c.city, COALESCE(a.postal_code, ''), a.phone
		FROM address a
		JOIN city c ON c.city_id = a.city_id
		ORDER BY a.address_id DESC
		LIMIT %s`, database.Placeholder(m.Driver, 1))
	return m.query(ctx, query, limit)
}

// LastNative returns the newest limit addresses from the address table alone;
// the city column holds the city id.
func (m Model) LastNative(ctx context.Context, limit int) ([]Address, error) {
	query := fmt.Sprintf(`SELECT address_id, address, district, CAST(city_id AS TEXT), COALESCE(postal_code, ''), phone
		FROM address
		ORDER BY address_id DESC
		LIMIT %s`, database.Placeholder(m.Driver, 1))
	return m.query(ctx, query, limit)
}

func (m Model) query(ctx context.Context, query string, limit int) ([]Address, error) {
	rows, err := m.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query addresses")
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.Address, &a.District, &a.City, &a.PostalCode, &a.Phone); err != nil {
			return nil, errors.Wrap(err, "failed to scan address")
		}
		out = append(out, a)
	}
	return out, errors.Wrap(rows.Err(), "failed to read addresses")
}
