package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/directory-admin/internal/domain"
)

// ErrUserNotFound is returned by every UserDirectory for an unknown id.
var ErrUserNotFound = errors.New("user not found")

// UserFilter narrows listing and counting. Zero value matches every user.
type UserFilter struct {
	Role   *domain.Role
	Banned *bool
}

// RoleFilter matches users of a single role.
func RoleFilter(role domain.Role) UserFilter {
	return UserFilter{Role: &role}
}

// UserDirectory is the durable store of users.
//
// Save writes the whole record. There is no version check: two concurrent
// read-modify-write sequences on the same user race and the later Save wins.
// The stored role is never changed by Save once the user exists, and the record
// is validated against that stored role, so a role swap fails with
// domain.ErrRoleRecordMismatch.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindAll returns matching users in insertion order.
	FindAll(ctx context.Context, filter UserFilter) ([]domain.User, error)
	// Save inserts the user when its id is empty or unknown, otherwise replaces it.
	Save(ctx context.Context, user *domain.User) error
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context, filter UserFilter) (int64, error)
}

type postgresUserDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresUserDirectory returns a Postgres-backed implementation.
func NewPostgresUserDirectory(pool *pgxpool.Pool) UserDirectory {
	return &postgresUserDirectory{pool: pool}
}

const userColumns = `id, role, full_name, contact, email, password_hash, age, address, banned, is_verified,
        employer_information, disability_information, created_at, updated_at`

func (r *postgresUserDirectory) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

func (r *postgresUserDirectory) FindAll(ctx context.Context, filter UserFilter) ([]domain.User, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY seq`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *postgresUserDirectory) Save(ctx context.Context, user *domain.User) error {
	if err := r.pinStoredRole(ctx, user); err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO users (id, role, full_name, contact, email, password_hash, age, address, banned, is_verified,
                           employer_information, disability_information)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        ON CONFLICT (id) DO UPDATE SET
            full_name=EXCLUDED.full_name,
            contact=EXCLUDED.contact,
            email=EXCLUDED.email,
            password_hash=EXCLUDED.password_hash,
            age=EXCLUDED.age,
            address=EXCLUDED.address,
            banned=EXCLUDED.banned,
            is_verified=EXCLUDED.is_verified,
            employer_information=EXCLUDED.employer_information,
            disability_information=EXCLUDED.disability_information,
            updated_at=NOW()
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		string(user.Role),
		user.FullName,
		user.Contact,
		user.Email,
		user.PasswordHash,
		user.Age,
		user.Address,
		user.Banned,
		user.IsVerified,
		user.EmployerInformation,
		user.DisabilityInformation,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// pinStoredRole replaces the caller's role with the stored one for existing
// users. The users_role_record constraint still guards concurrent writers.
func (r *postgresUserDirectory) pinStoredRole(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return nil
	}
	var role string
	err := r.pool.QueryRow(ctx, `SELECT role FROM users WHERE id=$1`, user.ID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load stored role: %w", err)
	}
	user.Role = domain.Role(role)
	return nil
}

func (r *postgresUserDirectory) DeleteByID(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresUserDirectory) Count(ctx context.Context, filter UserFilter) (int64, error) {
	where, args := filterClause(filter)

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func filterClause(filter UserFilter) (string, []any) {
	args := []any{}
	clauses := []string{}

	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Banned != nil {
		args = append(args, *filter.Banned)
		clauses = append(clauses, fmt.Sprintf("banned=$%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user domain.User
		role string
	)
	if err := row.Scan(
		&user.ID,
		&role,
		&user.FullName,
		&user.Contact,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.Address,
		&user.Banned,
		&user.IsVerified,
		&user.EmployerInformation,
		&user.DisabilityInformation,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	return &user, nil
}
