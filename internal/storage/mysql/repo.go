package mysql

import (
	"context"
	"database/sql"

	"wearapp_hotels/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Insert(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	res, err := r.db.ExecContext(ctx, insertHotelSQL,
		valStr(h.Image),
		h.Title,
		h.Description,
		h.Latitude,
		h.Longitude,
		h.Price,
	)
	if err != nil {
		return domain.Hotel{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Hotel{}, err
	}
	return r.GetHotel(ctx, id)
}

func (r *Repo) Update(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	// RowsAffected is 0 both for a vanished row and a no-op update; the
	// follow-up read decides between the two.
	_, err := r.db.ExecContext(ctx, updateHotelSQL,
		valStr(h.Image),
		h.Title,
		h.Description,
		h.Latitude,
		h.Longitude,
		h.Price,
		h.ID,
	)
	if err != nil {
		return domain.Hotel{}, err
	}
	return r.GetHotel(ctx, h.ID)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, getHotelSQL, id)
	h, err := scanHotel(row)
	if err == sql.ErrNoRows {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListHotels(ctx context.Context, q domain.ListQuery) ([]domain.Hotel, int64, error) {
	where, args := listPredicate(q)

	var total int64
	if err := r.db.QueryRowContext(ctx, countHotelsSelect+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(append([]any(nil), args...), q.Limit, q.Offset())
	rows, err := r.db.QueryContext(ctx, listHotelsSelect+where+" ORDER BY id LIMIT ? OFFSET ?", pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

type scanner interface{ Scan(dest ...any) error }

func scanHotel(s scanner) (domain.Hotel, error) {
	var (
		h     domain.Hotel
		image sql.NullString
	)
	if err := s.Scan(&h.ID, &h.Title, &h.Description, &h.Latitude, &h.Longitude, &h.Price, &image); err != nil {
		return domain.Hotel{}, err
	}
	if image.Valid {
		img := image.String
		h.Image = &img
	}
	return h, nil
}
