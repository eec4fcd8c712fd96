package persistence

import (
	"context"

	"github.com/sltrack/backend/internal/domain/identity"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/database"
)

// UserRepository provides account CRUD plus the active-user lookup the
// identity middleware authenticates against.
type UserRepository struct {
	db database.Executor
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db database.Executor) *UserRepository {
	return &UserRepository{db: db}
}

// List returns all accounts ordered by display name.
func (r *UserRepository) List(ctx context.Context) ([]database.Row, error) {
	return r.db.Query(ctx, `SELECT * FROM Users ORDER BY DisplayName ASC`)
}

// FindByID returns one account or ErrNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (database.Row, error) {
	row, err := r.db.Get(ctx, `SELECT * FROM Users WHERE UserID = ?`, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.ErrNotFound.WithMessage("user %d not found", id)
	}
	return row, nil
}

// FindActiveByUsername resolves a username to a typed user, considering
// active accounts only. Unknown and inactive usernames both return
// ErrUnauthenticated so callers cannot tell the two apart.
func (r *UserRepository) FindActiveByUsername(ctx context.Context, username string) (*identity.User, error) {
	row, err := r.db.Get(ctx, `SELECT * FROM Users WHERE Username = ? AND IsActive = 1`, username)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.ErrUnauthenticated.WithMessage("unknown or inactive user")
	}
	return userFromRow(row)
}

func userFromRow(row database.Row) (*identity.User, error) {
	roleName := row.String("Role")
	role, err := identity.ParseRole(roleName)
	if err != nil {
		return nil, shared.ErrFatalBackend.WithMessage("user %d has unrecognized role %q", row.Int64("UserID"), roleName)
	}
	return &identity.User{
		UserID:      row.Int64("UserID"),
		Username:    row.String("Username"),
		DisplayName: row.String("DisplayName"),
		Email:       row.String("Email"),
		Role:        role,
		RoleName:    roleName,
		IsActive:    row.Bool("IsActive"),
	}, nil
}

// Create inserts an account and returns the stored row. New accounts start
// active.
func (r *UserRepository) Create(ctx context.Context, in identity.UserInput) (database.Row, error) {
	res, err := r.db.Run(ctx,
		`INSERT INTO Users (Username, DisplayName, Email, Role) VALUES (?, ?, ?, ?)`,
		in.Username, in.DisplayName, strOrNil(in.Email), in.Role)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, res.LastInsertID)
}

// Update applies a partial update, keeping stored values for nil fields.
func (r *UserRepository) Update(ctx context.Context, id int64, in identity.UserUpdate) (database.Row, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = r.db.Run(ctx,
		`UPDATE Users SET DisplayName = ?, Email = ?, Role = ?, IsActive = ? WHERE UserID = ?`,
		mergeStr(in.DisplayName, existing, "DisplayName"),
		mergeStr(in.Email, existing, "Email"),
		mergeStr(in.Role, existing, "Role"),
		mergeBool(in.IsActive, existing, "IsActive"),
		id)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}
