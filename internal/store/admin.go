package store

import (
	"context"

	"mentorhub-api/internal/model"
)

type Stats struct {
	TotalUsers    int `json:"total_users"`
	TotalPosts    int `json:"total_posts"`
	TotalComments int `json:"total_comments"`
	TotalEvents   int `json:"total_events"`
}

func (s *Store) DashboardStats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.pool.QueryRow(ctx,
		`SELECT
		   (SELECT count(*) FROM users),
		   (SELECT count(*) FROM posts),
		   (SELECT count(*) FROM comments),
		   (SELECT count(*) FROM events)`,
	).Scan(&st.TotalUsers, &st.TotalPosts, &st.TotalComments, &st.TotalEvents)
	return st, translate(err)
}

func (s *Store) AllUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userCols+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
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
