package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/domain"
)

const userColumns = `id, user_name, COALESCE(name, user_name), email_id, COALESCE(role, ''),
	department, status, subscription_access_system, last_login, COALESCE(password, '')`

// UserStore reads and writes accounts in the login database.
type UserStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserStore(db *pgxpool.Pool, logger *zap.Logger) *UserStore {
	return &UserStore{db: db, logger: logger}
}

// decodeAccess parses the subscription_access_system column. An empty value
// is no stored settings.
func decodeAccess(raw []byte) (domain.AccessSettings, error) {
	var access domain.AccessSettings
	if len(raw) == 0 {
		return access, nil
	}
	if err := json.Unmarshal(raw, &access); err != nil {
		return domain.AccessSettings{}, err
	}
	return access, nil
}

func (s *UserStore) scanUser(row pgx.CollectableRow) (domain.User, error) {
	var (
		u      domain.User
		access []byte
	)
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Role,
		&u.Department, &u.Status, &access, &u.LastLogin, &u.Password)
	if err != nil {
		return u, err
	}
	// Login must not fail on a bad settings value; the user falls back to
	// the default systems.
	u.Access, err = decodeAccess(access)
	if err != nil {
		s.logger.Warn("ignoring malformed access settings",
			zap.Int64("user_id", u.ID), zap.Error(err))
	}
	return u, nil
}

func (s *UserStore) one(op string, rows pgx.Rows, err error) (domain.User, error) {
	if err != nil {
		return domain.User{}, classify(op, err)
	}
	u, err := pgx.CollectExactlyOneRow(rows, s.scanUser)
	if err != nil {
		return domain.User{}, classify(op, err)
	}
	return u, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	rows, err := s.db.Query(ctx, "SELECT "+userColumns+" FROM users WHERE user_name = $1", username)
	return s.one("find user", rows, err)
}

func (s *UserStore) Get(ctx context.Context, id int64) (domain.User, error) {
	rows, err := s.db.Query(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return s.one("get user", rows, err)
}

// List returns users ordered by the given column, which must be id or user_name.
func (s *UserStore) List(ctx context.Context, orderBy string) ([]domain.User, error) {
	order := "id DESC"
	if orderBy == "user_name" {
		order = "user_name"
	}
	rows, err := s.db.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY "+order)
	if err != nil {
		return nil, classify("list users", err)
	}
	users, err := pgx.CollectRows(rows, s.scanUser)
	if err != nil {
		return nil, classify("list users", err)
	}
	return users, nil
}

func (s *UserStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	rows, err := s.db.Query(ctx, `INSERT INTO users (user_name, name, email_id, password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.Username, u.Name, u.Email, u.Password, u.Role)
	return s.one("create user", rows, err)
}

// Update overwrites the editable columns of the user with the given id.
func (s *UserStore) Update(ctx context.Context, u domain.User) (domain.User, error) {
	rows, err := s.db.Query(ctx, `UPDATE users
		SET user_name = $1, name = $2, email_id = $3, password = $4, role = $5
		WHERE id = $6
		RETURNING `+userColumns,
		u.Username, u.Name, u.Email, u.Password, u.Role, u.ID)
	return s.one("update user", rows, err)
}

func (s *UserStore) DeleteByUsername(ctx context.Context, username string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM users WHERE user_name = $1", username)
	if err != nil {
		return classify("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete user %s: %w", username, domain.ErrNotFound)
	}
	return nil
}

func (s *UserStore) UpdateAccess(ctx context.Context, id int64, access domain.AccessSettings) (domain.User, error) {
	body, err := json.Marshal(access)
	if err != nil {
		return domain.User{}, fmt.Errorf("encode access settings: %w", err)
	}
	rows, err := s.db.Query(ctx, `UPDATE users SET subscription_access_system = $1::jsonb
		WHERE id = $2
		RETURNING `+userColumns, string(body), id)
	return s.one("update user access", rows, err)
}

func (s *UserStore) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	if _, err := s.db.Exec(ctx, "UPDATE users SET last_login = $1 WHERE id = $2", at, id); err != nil {
		return classify("touch last login", err)
	}
	return nil
}
