package store

import (
	"context"

	"mentorhub-api/internal/model"
)

func (s *Store) CreateEvent(ctx context.Context, e *model.Event) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO events (id, title, description, location, starts_at) VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at`,
		e.ID, e.Title, e.Description, e.Location, e.StartsAt,
	).Scan(&e.CreatedAt)
	return translate(err)
}

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT e.id, e.title, e.description, e.location, e.starts_at, e.created_at,
		        (SELECT count(*) FROM event_attendees a WHERE a.event_id = e.id)
		 FROM events e ORDER BY e.starts_at`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location,
			&e.StartsAt, &e.CreatedAt, &e.AttendeeCount); err != nil {
			return nil, translate(err)
		}
		out = append(out, e)
	}
	return out, translate(rows.Err())
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	e := &model.Event{}
	err := s.pool.QueryRow(ctx,
		`SELECT e.id, e.title, e.description, e.location, e.starts_at, e.created_at,
		        (SELECT count(*) FROM event_attendees a WHERE a.event_id = e.id)
		 FROM events e WHERE e.id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.CreatedAt, &e.AttendeeCount)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

// JoinEvent is idempotent: joining twice leaves one attendance row.
func (s *Store) JoinEvent(ctx context.Context, eventID, userID string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO event_attendees (event_id, user_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		eventID, userID)
	return translate(err)
}
