package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/directory-admin/internal/domain"
)

const createSQLiteUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL CHECK (role IN ('Employer', 'Applicant')),
	full_name TEXT NOT NULL DEFAULT '',
	contact TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL DEFAULT '',
	age INTEGER NOT NULL DEFAULT 0,
	address TEXT NOT NULL DEFAULT '',
	banned INTEGER NOT NULL DEFAULT 0,
	is_verified INTEGER NOT NULL DEFAULT 0,
	employer_information TEXT,
	disability_information TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	CONSTRAINT users_role_record CHECK (
		(role = 'Employer' AND disability_information IS NULL) OR
		(role = 'Applicant' AND employer_information IS NULL)
	)
);
CREATE INDEX IF NOT EXISTS users_role_idx ON users (role);
`

const sqliteUserColumns = `id, role, full_name, contact, email, password_hash, age, address, banned, is_verified,
	employer_information, disability_information, created_at, updated_at`

// SQLiteUserDirectory stores users in a local sqlite file.
type SQLiteUserDirectory struct {
	db *sql.DB
}

// NewSQLiteUserDirectory wraps an open sqlite handle. Call Init before use.
func NewSQLiteUserDirectory(db *sql.DB) *SQLiteUserDirectory {
	return &SQLiteUserDirectory{db: db}
}

// Init creates the users table when missing.
func (r *SQLiteUserDirectory) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSQLiteUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *SQLiteUserDirectory) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteUserColumns+` FROM users WHERE id = ?`, id)
	user, err := scanSQLiteUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

func (r *SQLiteUserDirectory) FindAll(ctx context.Context, filter UserFilter) ([]domain.User, error) {
	where, args := sqliteFilterClause(filter)
	rows, err := r.db.QueryContext(ctx, `SELECT `+sqliteUserColumns+` FROM users`+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanSQLiteUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *SQLiteUserDirectory) Save(ctx context.Context, user *domain.User) error {
	if err := r.pinStoredRole(ctx, user); err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	employer, err := marshalRecord(user.EmployerInformation)
	if err != nil {
		return err
	}
	disability, err := marshalRecord(user.DisabilityInformation)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
INSERT INTO users (id, role, full_name, contact, email, password_hash, age, address, banned, is_verified,
	employer_information, disability_information, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	full_name = excluded.full_name,
	contact = excluded.contact,
	email = excluded.email,
	password_hash = excluded.password_hash,
	age = excluded.age,
	address = excluded.address,
	banned = excluded.banned,
	is_verified = excluded.is_verified,
	employer_information = excluded.employer_information,
	disability_information = excluded.disability_information,
	updated_at = excluded.updated_at`,
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
		employer,
		disability,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, `SELECT created_at, updated_at FROM users WHERE id = ?`, user.ID).
		Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("reload timestamps: %w", err)
	}
	return nil
}

// pinStoredRole replaces the caller's role with the stored one for existing users.
func (r *SQLiteUserDirectory) pinStoredRole(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return nil
	}
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM users WHERE id = ?`, user.ID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load stored role: %w", err)
	}
	user.Role = domain.Role(role)
	return nil
}

func (r *SQLiteUserDirectory) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *SQLiteUserDirectory) Count(ctx context.Context, filter UserFilter) (int64, error) {
	where, args := sqliteFilterClause(filter)

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func sqliteFilterClause(filter UserFilter) (string, []any) {
	var (
		args    []any
		clauses []string
	)
	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		clauses = append(clauses, "role = ?")
	}
	if filter.Banned != nil {
		args = append(args, *filter.Banned)
		clauses = append(clauses, "banned = ?")
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteUser(row rowScanner) (*domain.User, error) {
	var (
		user       domain.User
		role       string
		employer   sql.NullString
		disability sql.NullString
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
		&employer,
		&disability,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)

	if employer.Valid {
		user.EmployerInformation = &domain.EmployerInformation{}
		if err := json.Unmarshal([]byte(employer.String), user.EmployerInformation); err != nil {
			return nil, fmt.Errorf("decode employer information: %w", err)
		}
	}
	if disability.Valid {
		user.DisabilityInformation = &domain.DisabilityInformation{}
		if err := json.Unmarshal([]byte(disability.String), user.DisabilityInformation); err != nil {
			return nil, fmt.Errorf("decode disability information: %w", err)
		}
	}
	return &user, nil
}

func marshalRecord[T any](record *T) (sql.NullString, error) {
	if record == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode information record: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}
