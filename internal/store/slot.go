package store

import (
	"context"
	"fmt"

	"mentorhub-api/internal/apperr"
	"mentorhub-api/internal/model"
)

func (s *Store) CreateSlot(ctx context.Context, slot *model.Slot) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO slots (id, mentor_id, start_time, end_time, status)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at, updated_at`,
		slot.ID, slot.MentorID, slot.StartTime, slot.EndTime, slot.Status,
	).Scan(&slot.CreatedAt, &slot.UpdatedAt)
	return translate(err)
}

func (s *Store) GetSlot(ctx context.Context, id string) (*model.Slot, error) {
	sl := &model.Slot{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, mentor_id, start_time, end_time, status, created_at, updated_at
		 FROM slots WHERE id = $1`, id,
	).Scan(&sl.ID, &sl.MentorID, &sl.StartTime, &sl.EndTime, &sl.Status, &sl.CreatedAt, &sl.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return sl, nil
}

func (s *Store) OpenSlots(ctx context.Context, mentorID string) ([]model.Slot, error) {
	q := `SELECT id, mentor_id, start_time, end_time, status, created_at, updated_at
	      FROM slots WHERE status = 'OPEN'`
	args := []any{}
	if mentorID != "" {
		q += ` AND mentor_id = $1`
		args = append(args, mentorID)
	}
	q += ` ORDER BY start_time`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Slot
	for rows.Next() {
		var sl model.Slot
		if err := rows.Scan(&sl.ID, &sl.MentorID, &sl.StartTime, &sl.EndTime,
			&sl.Status, &sl.CreatedAt, &sl.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, sl)
	}
	return out, translate(rows.Err())
}

// BookSlot flips the slot OPEN→BOOKED and inserts the booking in one
// transaction. The status flip is a conditional update; zero affected rows
// means somebody else won the slot, and the caller gets ErrConflict. Two
// concurrent bookers can never both commit: the UPDATE row-locks the slot,
// and the loser's WHERE clause no longer matches.
func (s *Store) BookSlot(ctx context.Context, b *model.Booking) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE slots SET status = 'BOOKED', updated_at = now()
		 WHERE id = $1 AND status = 'OPEN'`, b.SlotID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: slot not available", apperr.ErrConflict)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (id, slot_id, mentee_id) VALUES ($1,$2,$3)
		 RETURNING created_at`,
		b.ID, b.SlotID, b.MenteeID,
	).Scan(&b.CreatedAt)
	if err != nil {
		return translate(err)
	}

	return tx.Commit(ctx)
}
