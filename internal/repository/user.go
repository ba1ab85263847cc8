package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/yamdb/internal/model"
	"github.com/jackc/pgx/v5"
)

// UserRepository stores accounts.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, username, email, first_name, last_name, bio, role,
	confirmation_code, created_at, updated_at`

func collectUser(rows pgx.Rows, op string) (*model.User, error) {
	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, wrapNoRows(op, "users", err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO users (username, email, first_name, last_name, bio, role, confirmation_code)
		VALUES (@username, @email, @first_name, @last_name, @bio, @role, @confirmation_code)
		RETURNING`+userColumns,
		pgx.NamedArgs{
			"username":          u.Username,
			"email":             u.Email,
			"first_name":        u.FirstName,
			"last_name":         u.LastName,
			"bio":               u.Bio,
			"role":              u.Role,
			"confirmation_code": u.ConfirmationCode,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return collectUser(rows, "failed to insert user")
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT`+userColumns+` FROM users WHERE id = @id`,
		pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return collectUser(rows, "failed to get user")
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT`+userColumns+` FROM users WHERE username = @username`,
		pgx.NamedArgs{"username": username})
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return collectUser(rows, "failed to get user by username")
}

// FindByUsernameOrEmail returns every account holding either value; at most
// two rows since both columns are unique.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+userColumns+`
		FROM users
		WHERE username = @username OR email = @email
		ORDER BY id`,
		pgx.NamedArgs{"username": username, "email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect users: %w", err)
	}
	return users, nil
}

// List returns one page of accounts whose username contains search.
func (r *UserRepository) List(ctx context.Context, search string, page model.Page) ([]model.User, int, error) {
	args := pgx.NamedArgs{
		"search": search,
		"limit":  page.Limit(),
		"offset": page.Offset(),
	}
	where := ` WHERE (@search::text = '' OR username ILIKE '%' || @search::text || '%')`

	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM users`+where, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := r.db.Query(ctx, `SELECT`+userColumns+` FROM users`+where+`
		ORDER BY username
		LIMIT @limit OFFSET @offset`, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect users: %w", err)
	}
	return users, total, nil
}

// Update applies the non-nil fields of upd.
func (r *UserRepository) Update(ctx context.Context, id int64, upd model.UserUpdate) (*model.User, error) {
	var role *string
	if upd.Role != nil {
		s := string(*upd.Role)
		role = &s
	}

	rows, err := r.db.Query(ctx, `
		UPDATE users SET
			username   = COALESCE(@username::text, username),
			email      = COALESCE(@email::text, email),
			first_name = COALESCE(@first_name::text, first_name),
			last_name  = COALESCE(@last_name::text, last_name),
			bio        = COALESCE(@bio::text, bio),
			role       = COALESCE(@role::text, role)
		WHERE id = @id
		RETURNING`+userColumns,
		pgx.NamedArgs{
			"id":         id,
			"username":   upd.Username,
			"email":      upd.Email,
			"first_name": upd.FirstName,
			"last_name":  upd.LastName,
			"bio":        upd.Bio,
			"role":       role,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return collectUser(rows, "failed to update user")
}

// SetConfirmationCode stores a new code hash, replacing any pending one.
func (r *UserRepository) SetConfirmationCode(ctx context.Context, id int64, hash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET confirmation_code = @hash WHERE id = @id`,
		pgx.NamedArgs{"id": id, "hash": hash})
	if err != nil {
		return fmt.Errorf("failed to set confirmation code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to set confirmation code: %w", notFound("users"))
	}
	return nil
}

// ConsumeConfirmationCode clears the pending code only if it still equals
// hash, so two concurrent exchanges of one code cannot both succeed.
func (r *UserRepository) ConsumeConfirmationCode(ctx context.Context, id int64, hash string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET confirmation_code = ''
		WHERE id = @id AND confirmation_code = @hash AND confirmation_code <> ''`,
		pgx.NamedArgs{"id": id, "hash": hash})
	if err != nil {
		return false, fmt.Errorf("failed to consume confirmation code: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) DeleteByUsername(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = @username`,
		pgx.NamedArgs{"username": username})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete user: %w", notFound("users"))
	}
	return nil
}

// UpsertAdmin creates an admin account or promotes the existing account
// with that username.
func (r *UserRepository) UpsertAdmin(ctx context.Context, username, email string) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO users (username, email, role)
		VALUES (@username, @email, 'admin')
		ON CONFLICT (username) DO UPDATE SET role = 'admin'
		RETURNING`+userColumns,
		pgx.NamedArgs{"username": username, "email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin: %w", err)
	}
	return collectUser(rows, "failed to upsert admin")
}
