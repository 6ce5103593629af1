package store

import (
	"context"

	"mentorhub-api/internal/model"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role) VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role,
	)
	return translate(err)
}

const userCols = `id, email, password_hash, name, role, bio, profile_image, skills, created_at, updated_at`

// qualified variant for joined queries
const userColsQ = `u.id, u.email, u.password_hash, u.name, u.role, u.bio, u.profile_image, u.skills, u.created_at, u.updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.Bio, &u.ProfileImage, &u.Skills, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, email))
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (s *Store) UserExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, translate(err)
}

// UpdateProfile writes only the fields profile editing may touch.
func (s *Store) UpdateProfile(ctx context.Context, id, name, bio, profileImage, skills string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`UPDATE users SET name=$2, bio=$3, profile_image=$4, skills=$5, updated_at=now()
		 WHERE id=$1
		 RETURNING `+userCols, id, name, bio, profileImage, skills))
}

func (s *Store) SearchUsers(ctx context.Context, q string, limit, offset int) ([]model.User, int, error) {
	pattern := "%" + q + "%"
	rows, err := s.pool.Query(ctx,
		`SELECT `+userCols+` FROM users
		 WHERE name ILIKE $1 OR email ILIKE $1
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
		`SELECT count(*) FROM users WHERE name ILIKE $1 OR email ILIKE $1`, pattern).Scan(&total)
	return out, total, translate(err)
}
