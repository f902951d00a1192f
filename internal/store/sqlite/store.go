//Package sqlite provides SQLite backed pity and outcome stores.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/srliao/critterduel/pkg/arena"
	"github.com/srliao/critterduel/pkg/combat"
	"github.com/srliao/critterduel/pkg/rarity"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

//Store persists pull counters, battle outcomes and draws
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var (
	_ arena.PityStore    = (*Store)(nil)
	_ arena.OutcomeStore = (*Store)(nil)
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

//Open opens the database file at path and creates the schema if needed
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

//PullCount reads an actor's counter; unknown actors read as 0
func (s *Store) PullCount(ctx context.Context, actorID string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var n int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT pull_count FROM pity WHERE actor_id = ?`, actorID).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get pull count: %w", err)
	}
	return n, nil
}

func (s *Store) SetPullCount(ctx context.Context, actorID string, n int) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(actorID) == "" {
		return fmt.Errorf("actor id is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO pity (actor_id, pull_count, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(actor_id) DO UPDATE SET
		   pull_count = excluded.pull_count,
		   updated_at = excluded.updated_at`,
		actorID,
		n,
		toMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("put pull count: %w", err)
	}
	return nil
}

func (s *Store) SaveBattle(ctx context.Context, r arena.BattleRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(r.SessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO battles (
		   session_id,
		   player_a,
		   player_b,
		   winner,
		   draw,
		   reason,
		   turns,
		   hp_a,
		   hp_b,
		   log,
		   ended_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.Players[0],
		r.Players[1],
		r.Winner,
		boolToInt(r.Draw),
		string(r.Reason),
		r.Turns,
		r.FinalHP[0],
		r.FinalHP[1],
		strings.Join(r.Log, "\n"),
		toMillis(r.EndedAt),
	)
	if err != nil {
		return fmt.Errorf("insert battle: %w", err)
	}
	return nil
}

//Battles returns every battle actorID took part in, oldest first
func (s *Store) Battles(ctx context.Context, actorID string) ([]arena.BattleRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT session_id, player_a, player_b, winner, draw, reason, turns, hp_a, hp_b, log, ended_at
		 FROM battles
		 WHERE player_a = ? OR player_b = ?
		 ORDER BY ended_at, session_id`,
		actorID,
		actorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	defer rows.Close()

	var out []arena.BattleRecord
	for rows.Next() {
		var (
			r      arena.BattleRecord
			draw   int
			reason string
			log    string
			ended  int64
		)
		if err := rows.Scan(&r.SessionID, &r.Players[0], &r.Players[1], &r.Winner, &draw, &reason, &r.Turns, &r.FinalHP[0], &r.FinalHP[1], &log, &ended); err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}
		r.Draw = draw != 0
		r.Reason = combat.Reason(reason)
		if log != "" {
			r.Log = strings.Split(log, "\n")
		}
		r.EndedAt = fromMillis(ended)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate battles: %w", err)
	}
	return out, nil
}

func (s *Store) SavePull(ctx context.Context, r arena.PullRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO pulls (actor_id, rarity, prize, pull_count, pity_reset, drawn_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ActorID,
		r.Rarity.String(),
		r.Prize,
		r.PullCount,
		boolToInt(r.PityReset),
		toMillis(r.DrawnAt),
	)
	if err != nil {
		return fmt.Errorf("insert pull: %w", err)
	}
	return nil
}

//Pulls returns an actor's draws in the order they were made
func (s *Store) Pulls(ctx context.Context, actorID string) ([]arena.PullRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT actor_id, rarity, prize, pull_count, pity_reset, drawn_at
		 FROM pulls
		 WHERE actor_id = ?
		 ORDER BY id`,
		actorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pulls: %w", err)
	}
	defer rows.Close()

	var out []arena.PullRecord
	for rows.Next() {
		var (
			r     arena.PullRecord
			tier  string
			reset int
			drawn int64
		)
		if err := rows.Scan(&r.ActorID, &tier, &r.Prize, &r.PullCount, &reset, &drawn); err != nil {
			return nil, fmt.Errorf("scan pull: %w", err)
		}
		r.Rarity, err = rarity.Parse(tier)
		if err != nil {
			return nil, fmt.Errorf("scan pull: %w", err)
		}
		r.PityReset = reset != 0
		r.DrawnAt = fromMillis(drawn)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pulls: %w", err)
	}
	return out, nil
}
