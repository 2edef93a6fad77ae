package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/phrazzld/keyring-api/internal/platform/logger"
	"github.com/phrazzld/keyring-api/internal/store"
)

const userColumns = `id, email, name, role, password_secret, credentials, created_at, updated_at`

// sortColumns maps client sort fields onto columns. Only these reach ORDER BY.
var sortColumns = map[string]string{
	store.SortFieldName:      "name",
	store.SortFieldEmail:     "email",
	store.SortFieldRole:      "role",
	store.SortFieldCreatedAt: "created_at",
	store.SortFieldUpdatedAt: "updated_at",
}

// credentialRecord is the JSONB representation of one embedded credential.
type credentialRecord struct {
	ID      uuid.UUID `json:"id"`
	Website string    `json:"website"`
	Text    string    `json:"text"`
}

// PostgresUserStore implements store.UserStore using a PostgreSQL database.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a PostgresUserStore on a pool or a transaction.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	creds, err := encodeCredentials(user.Credentials)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Name,
		string(user.Role),
		user.PasswordSecret,
		creds,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isEmailViolation(err) {
			log.Debug("email already exists", slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Debug("user row inserted", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return s.getOne(ctx, query, email)
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user",
			slog.String("error", err.Error()))
		return nil, err
	}
	return user, nil
}

// IsEmailTaken implements store.UserStore.IsEmailTaken
func (s *PostgresUserStore) IsEmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`

	var taken bool
	if err := s.db.QueryRowContext(ctx, query, email, excludeID).Scan(&taken); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check email",
			slog.String("error", err.Error()))
		return false, err
	}
	return taken, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(
	ctx context.Context,
	filter store.UserFilter,
	opts store.QueryOptions,
) (*store.UserPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM users` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count users", slog.String("error", err.Error()))
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM users%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		userColumns,
		where,
		buildOrderBy(opts.SortKeys()),
		len(args)+1,
		len(args)+2,
	)
	rows, err := s.db.QueryContext(ctx, query, append(args, opts.Limit, opts.Skip())...)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var results []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		results = append(results, user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating user rows", slog.String("error", err.Error()))
		return nil, err
	}

	return store.NewUserPage(results, total, opts), nil
}

// Save implements store.UserStore.Save
func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	creds, err := encodeCredentials(user.Credentials)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET email = $2, name = $3, role = $4, password_secret = $5,
		    credentials = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Name,
		string(user.Role),
		user.PasswordSecret,
		creds,
		user.UpdatedAt,
	)
	if err != nil {
		if isEmailViolation(err) {
			log.Debug("email already exists", slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to save user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore.Delete
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// buildWhere renders the filter as a WHERE clause with positional arguments.
func buildWhere(filter store.UserFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Name != nil {
		args = append(args, *filter.Name)
		conds = append(conds, fmt.Sprintf("name = $%d", len(args)))
	}
	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildOrderBy renders sort keys, ending with id so pages are deterministic.
func buildOrderBy(keys []store.SortKey) string {
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		col, ok := sortColumns[k.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	parts = append(parts, "id ASC")
	return strings.Join(parts, ", ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user  domain.User
		role  string
		creds []byte
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&role,
		&user.PasswordSecret,
		&creds,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	user.Credentials, err = decodeCredentials(creds)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func encodeCredentials(creds []domain.Credential) (string, error) {
	records := make([]credentialRecord, len(creds))
	for i, c := range creds {
		records[i] = credentialRecord{ID: c.ID, Website: c.Website, Text: c.Text}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode credentials: %w", err)
	}
	return string(data), nil
}

func decodeCredentials(data []byte) ([]domain.Credential, error) {
	var records []credentialRecord
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: credentials column: %v", store.ErrInvalidEntity, err)
		}
	}
	creds := make([]domain.Credential, len(records))
	for i, r := range records {
		creds[i] = domain.Credential{ID: r.ID, Website: r.Website, Text: r.Text}
	}
	return creds, nil
}
