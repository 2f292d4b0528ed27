package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mtgkit/edh-companion/internal/commander"
)

// Store persists commander descriptors in SQLite. It backs the catalog for
// deployments that maintain their own card database rather than relying on
// the suggestion dataset alone.
type Store struct {
	conn *sql.DB
}

// StoreConfig holds SQLite configuration for the commander store.
type StoreConfig struct {
	// Path is the file path to the SQLite database.
	// Use ":memory:" for an in-memory database (useful for testing).
	Path string

	// MaxOpenConns sets the maximum number of open connections. Default: 10.
	MaxOpenConns int

	// BusyTimeout sets how long to wait when the database is locked.
	// Default: 5 seconds.
	BusyTimeout time.Duration

	// AutoMigrate runs pending schema migrations on Open.
	AutoMigrate bool
}

// DefaultStoreConfig returns a StoreConfig with sensible defaults.
func DefaultStoreConfig(path string) *StoreConfig {
	return &StoreConfig{
		Path:         path,
		MaxOpenConns: 10,
		BusyTimeout:  5 * time.Second,
	}
}

// OpenStore opens the commander store, creating the parent directory and
// optionally applying migrations.
func OpenStore(config *StoreConfig) (*Store, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on",
		config.Path, config.BusyTimeout.Milliseconds())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	maxOpen := config.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	conn.SetMaxOpenConns(maxOpen)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &Store{conn: conn}
	if config.AutoMigrate {
		if err := store.Migrate(); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// UpsertCommander inserts or replaces a commander record.
func (s *Store) UpsertCommander(ctx context.Context, cmd *commander.Commander) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	colors, err := json.Marshal(cmd.ColorIdentity)
	if err != nil {
		return fmt.Errorf("marshal color identity: %w", err)
	}
	themes, err := json.Marshal(cmd.ThemeTags)
	if err != nil {
		return fmt.Errorf("marshal theme tags: %w", err)
	}
	partnerWith, err := json.Marshal(cmd.PartnerWith)
	if err != nil {
		return fmt.Errorf("marshal partner_with: %w", err)
	}
	labels, err := json.Marshal(cmd.RestrictedPartnerLabels)
	if err != nil {
		return fmt.Errorf("marshal restricted labels: %w", err)
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO commanders (
			name, display_name, color_identity, theme_tags, partner_with,
			has_partner, has_plain_partner, supports_backgrounds, is_background,
			is_doctor, is_doctors_companion, restricted_partner_labels, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			display_name = excluded.display_name,
			color_identity = excluded.color_identity,
			theme_tags = excluded.theme_tags,
			partner_with = excluded.partner_with,
			has_partner = excluded.has_partner,
			has_plain_partner = excluded.has_plain_partner,
			supports_backgrounds = excluded.supports_backgrounds,
			is_background = excluded.is_background,
			is_doctor = excluded.is_doctor,
			is_doctors_companion = excluded.is_doctors_companion,
			restricted_partner_labels = excluded.restricted_partner_labels,
			updated_at = excluded.updated_at`,
		cmd.Name, cmd.DisplayName, string(colors), string(themes), string(partnerWith),
		boolToInt(cmd.HasPartner), boolToInt(cmd.HasPlainPartner),
		boolToInt(cmd.SupportsBackgrounds), boolToInt(cmd.IsBackground),
		boolToInt(cmd.IsDoctor), boolToInt(cmd.IsDoctorsCompanion),
		string(labels), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert commander %q: %w", cmd.Name, err)
	}
	return nil
}

// GetCommander fetches a single commander by exact canonical name.
// Returns nil with no error when the commander is not stored.
func (s *Store) GetCommander(ctx context.Context, name string) (*commander.Commander, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT name, display_name, color_identity, theme_tags, partner_with,
			has_partner, has_plain_partner, supports_backgrounds, is_background,
			is_doctor, is_doctors_companion, restricted_partner_labels
		FROM commanders WHERE name = ?`, name)

	cmd, err := scanCommander(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get commander %q: %w", name, err)
	}
	return cmd, nil
}

// ListCommanders returns all stored commanders ordered by name.
func (s *Store) ListCommanders(ctx context.Context) ([]*commander.Commander, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT name, display_name, color_identity, theme_tags, partner_with,
			has_partner, has_plain_partner, supports_backgrounds, is_background,
			is_doctor, is_doctors_companion, restricted_partner_labels
		FROM commanders ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list commanders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var commanders []*commander.Commander
	for rows.Next() {
		cmd, err := scanCommander(rows)
		if err != nil {
			return nil, fmt.Errorf("scan commander: %w", err)
		}
		commanders = append(commanders, cmd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commanders: %w", err)
	}
	return commanders, nil
}

// LoadCatalog builds an in-memory catalog from all stored commanders.
func (s *Store) LoadCatalog(ctx context.Context) (*MemoryCatalog, error) {
	commanders, err := s.ListCommanders(ctx)
	if err != nil {
		return nil, err
	}
	cat := NewMemoryCatalog()
	for _, cmd := range commanders {
		cat.Add(cmd)
	}
	return cat, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCommander(row scanner) (*commander.Commander, error) {
	var (
		cmd                                            commander.Commander
		colors, themes, partnerWith, restrictedLabels  string
		hasPartner, hasPlain, supportsBG, isBackground int
		isDoctor, isCompanion                          int
	)
	err := row.Scan(&cmd.Name, &cmd.DisplayName, &colors, &themes, &partnerWith,
		&hasPartner, &hasPlain, &supportsBG, &isBackground,
		&isDoctor, &isCompanion, &restrictedLabels)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(colors), &cmd.ColorIdentity); err != nil {
		return nil, fmt.Errorf("decode color identity: %w", err)
	}
	if err := json.Unmarshal([]byte(themes), &cmd.ThemeTags); err != nil {
		return nil, fmt.Errorf("decode theme tags: %w", err)
	}
	if err := json.Unmarshal([]byte(partnerWith), &cmd.PartnerWith); err != nil {
		return nil, fmt.Errorf("decode partner_with: %w", err)
	}
	if err := json.Unmarshal([]byte(restrictedLabels), &cmd.RestrictedPartnerLabels); err != nil {
		return nil, fmt.Errorf("decode restricted labels: %w", err)
	}

	cmd.HasPartner = hasPartner != 0
	cmd.HasPlainPartner = hasPlain != 0
	cmd.SupportsBackgrounds = supportsBG != 0
	cmd.IsBackground = isBackground != 0
	cmd.IsDoctor = isDoctor != 0
	cmd.IsDoctorsCompanion = isCompanion != 0
	return &cmd, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
