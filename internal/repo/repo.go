package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

var ErrNotFound = errors.New("scenario not found")

type Scenario struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	MLSS           float64   `json:"mlss"`
	EquivalentFlow float64   `json:"equivalent_flow"`
	CreatedAt      time.Time `json:"created_at"`
}

type Repository interface {
	CreateScenario(ctx context.Context, name string, mlss, flow float64) (int, error)
	ListScenarios(ctx context.Context) ([]Scenario, error)
	DeleteScenario(ctx context.Context, id int) error
}

const schema = `CREATE TABLE IF NOT EXISTS scenarios (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	mlss DOUBLE PRECISION NOT NULL,
	equivalent_flow DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresScenarioRepository struct {
	db *sql.DB
}

func NewPostgresScenarioDB(db *sql.DB) *PostgresScenarioRepository {
	return &PostgresScenarioRepository{db: db}
}

// Migrate creates the scenarios table when it does not exist.
func (r *PostgresScenarioRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresScenarioRepository) CreateScenario(ctx context.Context, name string, mlss, flow float64) (int, error) {
	var id int
	query := "INSERT INTO scenarios (name, mlss, equivalent_flow) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, name, mlss, flow).Scan(&id)
	return id, err
}

func (r *PostgresScenarioRepository) ListScenarios(ctx context.Context) ([]Scenario, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, mlss, equivalent_flow, created_at FROM scenarios ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		var s Scenario
		if err := rows.Scan(&s.ID, &s.Name, &s.MLSS, &s.EquivalentFlow, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresScenarioRepository) DeleteScenario(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM scenarios WHERE id=$1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ConnString adds sslmode=require when the DSN does not choose a mode.
func ConnString(connStr string) string {
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if strings.Contains(connStr, "?") {
			return connStr + "&sslmode=require"
		}
		return connStr + "?sslmode=require"
	}
	return connStr + " sslmode=require"
}

func InitDB(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", ConnString(connStr))
	if err != nil {
		return nil, fmt.Errorf("db config: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}
