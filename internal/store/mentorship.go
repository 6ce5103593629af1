package store

import (
	"context"

	"mentorhub-api/internal/model"
)

func (s *Store) CreateMentorship(ctx context.Context, m *model.Mentorship) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO mentorships (id, mentor_id, mentee_id, topic, status, preferred_slot)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at, updated_at`,
		m.ID, m.MentorID, m.MenteeID, m.Topic, m.Status, m.PreferredSlot,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return translate(err)
}

const mentorshipCols = `id, mentor_id, mentee_id, topic, status, preferred_slot, created_at, updated_at`

func scanMentorship(row interface{ Scan(...any) error }) (*model.Mentorship, error) {
	m := &model.Mentorship{}
	err := row.Scan(&m.ID, &m.MentorID, &m.MenteeID, &m.Topic, &m.Status,
		&m.PreferredSlot, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (s *Store) GetMentorship(ctx context.Context, id string) (*model.Mentorship, error) {
	return scanMentorship(s.pool.QueryRow(ctx,
		`SELECT `+mentorshipCols+` FROM mentorships WHERE id = $1`, id))
}

func (s *Store) AcceptMentorship(ctx context.Context, id string) (*model.Mentorship, error) {
	return scanMentorship(s.pool.QueryRow(ctx,
		`UPDATE mentorships SET status='accepted', updated_at=now() WHERE id=$1
		 RETURNING `+mentorshipCols, id))
}

func (s *Store) DeleteMentorship(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM mentorships WHERE id = $1`, id)
	return translate(err)
}

func (s *Store) MentorshipsForMentor(ctx context.Context, mentorID, status string, limit, offset int) ([]model.Mentorship, int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+mentorshipCols+` FROM mentorships
		 WHERE mentor_id = $1 AND status = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		mentorID, status, limit, offset)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	var out []model.Mentorship
	for rows.Next() {
		m, err := scanMentorship(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translate(err)
	}

	var total int
	err = s.pool.QueryRow(ctx,
		`SELECT count(*) FROM mentorships WHERE mentor_id = $1 AND status = $2`,
		mentorID, status).Scan(&total)
	return out, total, translate(err)
}

// MenteesForMentor lists the users behind accepted mentorships.
func (s *Store) MenteesForMentor(ctx context.Context, mentorID string) ([]model.User, error) {
	return s.mentorshipUsers(ctx, `m.mentee_id`, `m.mentor_id`, mentorID)
}

// MentorsForMentee is the mentee-side view of the same edge.
func (s *Store) MentorsForMentee(ctx context.Context, menteeID string) ([]model.User, error) {
	return s.mentorshipUsers(ctx, `m.mentor_id`, `m.mentee_id`, menteeID)
}

func (s *Store) mentorshipUsers(ctx context.Context, joinCol, whereCol, id string) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColsQ+` FROM users u
		 JOIN mentorships m ON `+joinCol+` = u.id
		 WHERE `+whereCol+` = $1 AND m.status = 'accepted'
		 ORDER BY m.created_at DESC`, id)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, translate(rows.Err())
}

// SearchMentors finds mentor-role users whose name or skills match the topic.
// An empty topic lists every mentor.
func (s *Store) SearchMentors(ctx context.Context, topic string, limit, offset int) ([]model.User, int, error) {
	pattern := "%" + topic + "%"
	rows, err := s.pool.Query(ctx,
		`SELECT `+userCols+` FROM users
		 WHERE role = 'MENTOR' AND (name ILIKE $1 OR skills ILIKE $1)
		 ORDER BY name LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translate(err)
	}

	var total int
	err = s.pool.QueryRow(ctx,
		`SELECT count(*) FROM users
		 WHERE role = 'MENTOR' AND (name ILIKE $1 OR skills ILIKE $1)`, pattern).Scan(&total)
	return out, total, translate(err)
}
