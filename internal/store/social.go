package store

import (
	"context"

	"mentorhub-api/internal/model"
)

// ToggleFollow follows if no edge exists, unfollows otherwise. The
// (follower_id, following_id) primary key keeps the edge unique under
// concurrent toggles.
func (s *Store) ToggleFollow(ctx context.Context, followerID, followingID string) (following bool, err error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO followers (follower_id, following_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		followerID, followingID)
	if err != nil {
		return false, translate(err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	_, err = s.pool.Exec(ctx,
		`DELETE FROM followers WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID)
	return false, translate(err)
}

func (s *Store) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM followers WHERE follower_id = $1 AND following_id = $2)`,
		followerID, followingID).Scan(&exists)
	return exists, translate(err)
}

type ProfileCounts struct {
	Posts     int `json:"posts"`
	Followers int `json:"followers"`
	Following int `json:"following"`
}

func (s *Store) CountsForUser(ctx context.Context, userID string) (ProfileCounts, error) {
	var c ProfileCounts
	err := s.pool.QueryRow(ctx,
		`SELECT
		   (SELECT count(*) FROM posts WHERE author_id = $1),
		   (SELECT count(*) FROM followers WHERE following_id = $1),
		   (SELECT count(*) FROM followers WHERE follower_id = $1)`,
		userID).Scan(&c.Posts, &c.Followers, &c.Following)
	return c, translate(err)
}

func (s *Store) Followers(ctx context.Context, userID string, limit, offset int) ([]model.User, int, error) {
	return s.followEdge(ctx, userID, true, limit, offset)
}

func (s *Store) Following(ctx context.Context, userID string, limit, offset int) ([]model.User, int, error) {
	return s.followEdge(ctx, userID, false, limit, offset)
}

func (s *Store) followEdge(ctx context.Context, userID string, followersOf bool, limit, offset int) ([]model.User, int, error) {
	join, where := `f.follower_id`, `f.following_id`
	if !followersOf {
		join, where = `f.following_id`, `f.follower_id`
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColsQ+` FROM users u
		 JOIN followers f ON `+join+` = u.id
		 WHERE `+where+` = $1
		 ORDER BY f.created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
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
		`SELECT count(*) FROM followers f WHERE `+where+` = $1`, userID).Scan(&total)
	return out, total, translate(err)
}
