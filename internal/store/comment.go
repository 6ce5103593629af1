package store

import (
	"context"

	"mentorhub-api/internal/model"
)

func (s *Store) CreateComment(ctx context.Context, c *model.Comment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO comments (id, post_id, author_id, content) VALUES ($1,$2,$3,$4)
		 RETURNING created_at, updated_at`,
		c.ID, c.PostID, c.AuthorID, c.Content,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return translate(err)
}

func (s *Store) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	c := &model.Comment{}
	err := s.pool.QueryRow(ctx,
		`SELECT c.id, c.post_id, c.author_id, u.name, c.content, c.created_at, c.updated_at
		 FROM comments c JOIN users u ON u.id = c.author_id WHERE c.id = $1`, id,
	).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (s *Store) CommentsByPost(ctx context.Context, postID string, limit, offset int) ([]model.Comment, int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT c.id, c.post_id, c.author_id, u.name, c.content, c.created_at, c.updated_at
		 FROM comments c JOIN users u ON u.id = c.author_id
		 WHERE c.post_id = $1 ORDER BY c.created_at DESC LIMIT $2 OFFSET $3`,
		postID, limit, offset)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName,
			&c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, translate(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translate(err)
	}

	var total int
	err = s.pool.QueryRow(ctx,
		`SELECT count(*) FROM comments WHERE post_id = $1`, postID).Scan(&total)
	return out, total, translate(err)
}

func (s *Store) UpdateComment(ctx context.Context, id, content string) (*model.Comment, error) {
	c := &model.Comment{}
	err := s.pool.QueryRow(ctx,
		`UPDATE comments SET content=$2, updated_at=now() WHERE id=$1
		 RETURNING id, post_id, author_id, content, created_at, updated_at`,
		id, content,
	).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return translate(err)
}
