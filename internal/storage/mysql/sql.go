package mysql

import (
	"strings"

	"wearapp_hotels/internal/domain"
)

const insertHotelSQL = `
INSERT INTO hotels
  (image, title, description, latitude, longitude, price)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const updateHotelSQL = `
UPDATE hotels
SET image       = ?,
    title       = ?,
    description = ?,
    latitude    = ?,
    longitude   = ?,
    price       = ?,
    updated_at  = CURRENT_TIMESTAMP
WHERE id = ?
`

const deleteHotelSQL = `DELETE FROM hotels WHERE id = ?`

const getHotelSQL = `
SELECT id, title, description, latitude, longitude, price, image
FROM hotels
WHERE id = ?
`

const listHotelsSelect = `
SELECT id, title, description, latitude, longitude, price, image
FROM hotels
`

const countHotelsSelect = `SELECT COUNT(*) FROM hotels`

// listPredicate assembles the optional list filters into a single WHERE
// conjunction with bound parameters, in a fixed clause order so the generated
// SQL is deterministic and testable.
func listPredicate(q domain.ListQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if q.Title != nil {
		clauses = append(clauses, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(*q.Title)+"%")
	}
	if q.MinPrice != nil {
		clauses = append(clauses, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		clauses = append(clauses, "price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
