package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentorhub-api/internal/model"
)

// CreatePost inserts the post and upserts its tags in one transaction.
func (s *Store) CreatePost(ctx context.Context, p *model.Post) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO posts (id, author_id, title, content, image) VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at, updated_at`,
		p.ID, p.AuthorID, p.Title, p.Content, p.Image,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return translate(err)
	}

	if err := setTags(ctx, tx, p.ID, p.Tags); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// setTags replaces the post's tag links, upserting tags by lowercase name.
func setTags(ctx context.Context, tx pgx.Tx, postID string, tags []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return translate(err)
	}
	for _, name := range tags {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		var tagID string
		err := tx.QueryRow(ctx,
			`INSERT INTO tags (id, name) VALUES ($1,$2)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`, uuid.New().String(), name).Scan(&tagID)
		if err != nil {
			return translate(err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			postID, tagID); err != nil {
			return translate(err)
		}
	}
	return nil
}

const postCols = `p.id, p.author_id, u.name, p.title, p.content, p.image, p.created_at, p.updated_at,
	(SELECT count(*) FROM likes l WHERE l.post_id = p.id),
	(SELECT count(*) FROM comments c WHERE c.post_id = p.id)`

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	p := &model.Post{}
	err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Content, &p.Image,
		&p.CreatedAt, &p.UpdatedAt, &p.LikeCount, &p.CommentCount)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (*model.Post, error) {
	p, err := scanPost(s.pool.QueryRow(ctx,
		`SELECT `+postCols+` FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := s.loadTags(ctx, []*model.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListPosts(ctx context.Context, authorID string, limit, offset int) ([]model.Post, int, error) {
	q := `SELECT ` + postCols + ` FROM posts p JOIN users u ON u.id = p.author_id`
	countQ := `SELECT count(*) FROM posts p`
	args := []any{limit, offset}
	var countArgs []any
	if authorID != "" {
		q += ` WHERE p.author_id = $3`
		countQ += ` WHERE p.author_id = $1`
		args = append(args, authorID)
		countArgs = append(countArgs, authorID)
	}
	q += ` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`
	return s.queryPosts(ctx, q, args, countQ, countArgs)
}

// SearchPosts matches title, content or tag name by substring.
func (s *Store) SearchPosts(ctx context.Context, term string, limit, offset int) ([]model.Post, int, error) {
	pattern := "%" + term + "%"
	where := ` WHERE p.title ILIKE $1 OR p.content ILIKE $1 OR EXISTS (
		SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = p.id AND t.name ILIKE $1)`
	q := `SELECT ` + postCols + ` FROM posts p JOIN users u ON u.id = p.author_id` + where +
		` ORDER BY p.created_at DESC LIMIT $2 OFFSET $3`
	countQ := `SELECT count(*) FROM posts p` + where
	return s.queryPosts(ctx, q, []any{pattern, limit, offset}, countQ, []any{pattern})
}

func (s *Store) queryPosts(ctx context.Context, q string, args []any, countQ string, countArgs []any) ([]model.Post, int, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, translate(err)
	}
	defer rows.Close()

	var out []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translate(err)
	}

	refs := make([]*model.Post, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	if err := s.loadTags(ctx, refs); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.pool.QueryRow(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

func (s *Store) loadTags(ctx context.Context, posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	byID := make(map[string]*model.Post, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Tags = []string{}
	}
	rows, err := s.pool.Query(ctx,
		`SELECT pt.post_id, t.name FROM post_tags pt
		 JOIN tags t ON t.id = pt.tag_id
		 WHERE pt.post_id = ANY($1) ORDER BY t.name`, ids)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()
	for rows.Next() {
		var postID, name string
		if err := rows.Scan(&postID, &name); err != nil {
			return translate(err)
		}
		byID[postID].Tags = append(byID[postID].Tags, name)
	}
	return translate(rows.Err())
}

func (s *Store) UpdatePost(ctx context.Context, p *model.Post) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE posts SET title=$2, content=$3, updated_at=now() WHERE id=$1
		 RETURNING updated_at`, p.ID, p.Title, p.Content).Scan(&p.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	if err := setTags(ctx, tx, p.ID, p.Tags); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return translate(err)
}

// ToggleLike likes the post if no like exists, unlikes otherwise.
// The insert relies on the (user_id, post_id) primary key, so two
// concurrent likes from one user collapse to a single row.
func (s *Store) ToggleLike(ctx context.Context, userID, postID string) (liked bool, err error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO likes (user_id, post_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
		userID, postID)
	if err != nil {
		return false, translate(err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	_, err = s.pool.Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	return false, translate(err)
}
