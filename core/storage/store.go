// Package storage persists users, KPI samples, outbound messages and
// prompt overrides in SQLite, and resolves the platform-native
// locations for the config file and the database.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-based persistence for users, KPIs, outbound
// messages and prompt overrides.
type Store struct {
	db   *sql.DB
	path string
}

// StoreConfig configures the store.
type StoreConfig struct {
	Path string // Path to SQLite database file; empty means the platform default
}

// NewStore opens (and if necessary initializes) the database.
func NewStore(cfg StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultDatabasePath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &Store{db: db, path: path}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'employee',
		department TEXT NOT NULL DEFAULT 'general',
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS kpis (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		department TEXT NOT NULL,
		month TEXT NOT NULL,
		target REAL NOT NULL,
		actual REAL NOT NULL,
		drift REAL NOT NULL,
		UNIQUE (user_id, month),
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_kpis_user_month ON kpis(user_id, month DESC);

	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		channel TEXT NOT NULL,
		tier TEXT,
		text TEXT NOT NULL,
		sent_at TIMESTAMP NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_messages_user_sent ON messages(user_id, sent_at DESC);

	CREATE TABLE IF NOT EXISTS ai_prompts (
		id TEXT PRIMARY KEY,
		agent_type TEXT NOT NULL,
		prompt_name TEXT NOT NULL,
		template TEXT NOT NULL,
		variables JSON,
		is_active INTEGER NOT NULL DEFAULT 1,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (agent_type, prompt_name)
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// =============================================================================
// Users
// =============================================================================

// FindUserByEmail returns the user with the given email, or ErrNotFound.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, department, created_at FROM users WHERE email = ?`,
		email,
	)

	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Department, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// EnsureUser returns the user with the given email, creating a default
// employee record when none exists. The display name defaults to the
// local part of the email.
func (s *Store) EnsureUser(ctx context.Context, email string) (*User, error) {
	user, err := s.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	u := &User{
		ID:         uuid.New().String(),
		Email:      email,
		Name:       name,
		Role:       "employee",
		Department: "general",
		CreatedAt:  time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, role, department, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.Role, u.Department, u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// =============================================================================
// KPIs
// =============================================================================

// UpsertKPI creates or replaces the KPI row for (user, month) and
// returns the stored record.
func (s *Store) UpsertKPI(ctx context.Context, rec *KPIRecord) (*KPIRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kpis (id, user_id, department, month, target, actual, drift)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, month) DO UPDATE SET
			department = excluded.department,
			target = excluded.target,
			actual = excluded.actual,
			drift = excluded.drift`,
		rec.ID, rec.UserID, rec.Department, rec.Month, rec.Target, rec.Actual, rec.Drift,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert kpi: %w", err)
	}

	// The insert path keeps the generated ID; the update path keeps the
	// original row ID, so read it back.
	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM kpis WHERE user_id = ? AND month = ?`, rec.UserID, rec.Month)
	if err := row.Scan(&rec.ID); err != nil {
		return nil, fmt.Errorf("failed to read back kpi: %w", err)
	}
	return rec, nil
}

// LatestKPI returns the most recent KPI row for the user (by month,
// descending), or ErrNotFound.
func (s *Store) LatestKPI(ctx context.Context, userID string) (*KPIRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, department, month, target, actual, drift
		FROM kpis WHERE user_id = ?
		ORDER BY month DESC LIMIT 1`,
		userID,
	)

	var rec KPIRecord
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Department, &rec.Month, &rec.Target, &rec.Actual, &rec.Drift)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest kpi: %w", err)
	}
	return &rec, nil
}

// =============================================================================
// Messages
// =============================================================================

// RecordMessage persists an outbound message for cooldown tracking.
func (s *Store) RecordMessage(ctx context.Context, rec *MessageRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.SentAt.IsZero() {
		rec.SentAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, user_id, channel, tier, text, sent_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Channel, rec.Tier, rec.Text, rec.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record message: %w", err)
	}
	return nil
}

// LastMessageTime returns the send time of the user's most recent
// message, or nil when the user has never been messaged.
func (s *Store) LastMessageTime(ctx context.Context, userID string) (*time.Time, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT sent_at FROM messages WHERE user_id = ? ORDER BY sent_at DESC LIMIT 1`,
		userID,
	)

	var sentAt time.Time
	if err := row.Scan(&sentAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last message: %w", err)
	}
	return &sentAt, nil
}

// =============================================================================
// Prompts
// =============================================================================

// FindActivePrompt returns the active template body for
// (agentType, promptName), or ErrNotFound.
func (s *Store) FindActivePrompt(ctx context.Context, agentType, promptName string) (string, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT template FROM ai_prompts
		WHERE agent_type = ? AND prompt_name = ? AND is_active = 1`,
		agentType, promptName,
	)

	var template string
	if err := row.Scan(&template); err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to find prompt: %w", err)
	}
	return template, nil
}

// UpsertPrompt creates or replaces the prompt override for
// (agentType, promptName).
func (s *Store) UpsertPrompt(ctx context.Context, rec *PromptRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}

	vars, err := json.Marshal(rec.Variables)
	if err != nil {
		return fmt.Errorf("failed to encode prompt variables: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ai_prompts (id, agent_type, prompt_name, template, variables, is_active, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (agent_type, prompt_name) DO UPDATE SET
			template = excluded.template,
			variables = excluded.variables,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at`,
		rec.ID, rec.AgentType, rec.Name, rec.Template, string(vars), boolToInt(rec.Active), rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert prompt: %w", err)
	}
	return nil
}

// SeedPrompt inserts the prompt only when no row exists for
// (agentType, promptName). Existing overrides are never overwritten.
func (s *Store) SeedPrompt(ctx context.Context, agentType, promptName, template string, variables map[string]string) error {
	vars, err := json.Marshal(variables)
	if err != nil {
		return fmt.Errorf("failed to encode prompt variables: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ai_prompts (id, agent_type, prompt_name, template, variables, is_active, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT (agent_type, prompt_name) DO NOTHING`,
		uuid.New().String(), agentType, promptName, template, string(vars), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to seed prompt: %w", err)
	}
	return nil
}

// ListPrompts returns all prompt rows for the agent type.
func (s *Store) ListPrompts(ctx context.Context, agentType string) ([]*PromptRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, agent_type, prompt_name, template, variables, is_active, updated_at
		FROM ai_prompts WHERE agent_type = ? ORDER BY prompt_name`,
		agentType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	var records []*PromptRecord
	for rows.Next() {
		var rec PromptRecord
		var vars sql.NullString
		var active int
		if err := rows.Scan(&rec.ID, &rec.AgentType, &rec.Name, &rec.Template, &vars, &active, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		rec.Active = active != 0
		if vars.Valid && vars.String != "" {
			if err := json.Unmarshal([]byte(vars.String), &rec.Variables); err != nil {
				return nil, fmt.Errorf("failed to decode prompt variables: %w", err)
			}
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
