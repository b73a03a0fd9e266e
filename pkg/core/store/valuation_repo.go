package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"intrinsic_valuation/pkg/core/valuation"
)

// ValuationRepo archives valuation results, one row per ticker holding the
// latest run as a JSONB blob.
//
// Schema assumption (managed outside this package):
//
//	CREATE TABLE IF NOT EXISTS valuation_runs (
//	  ticker TEXT PRIMARY KEY,
//	  run_id TEXT,
//	  result_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type ValuationRepo struct{}

// NewValuationRepo creates a repository instance.
func NewValuationRepo() *ValuationRepo {
	return &ValuationRepo{}
}

// Save upserts the result keyed by ticker. Companies resolved without a
// ticker are keyed by name so heuristic runs are archived too.
func (r *ValuationRepo) Save(ctx context.Context, result *valuation.Result) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	key := result.Ticker
	if key == "" {
		key = result.Company
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO valuation_runs (ticker, run_id, result_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ticker)
		DO UPDATE SET
			run_id = EXCLUDED.run_id,
			result_json = EXCLUDED.result_json,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := pool.Exec(ctx, query, key, result.RunID, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save valuation run: %w", err)
	}
	return nil
}

// Load retrieves the latest archived result for a ticker or company name.
func (r *ValuationRepo) Load(ctx context.Context, key string) (*valuation.Result, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT result_json FROM valuation_runs WHERE ticker = $1`, key).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no valuation run found for %s", key)
		}
		return nil, fmt.Errorf("failed to load valuation run: %w", err)
	}

	var result valuation.Result
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal valuation run: %w", err)
	}
	return &result, nil
}
