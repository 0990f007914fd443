package output

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOutput lands directory events in warehouse tables, one row per
// event with the raw payload as JSONB.
type PostgresOutput struct {
	pool *pgxpool.Pool
}

func NewPostgresOutput(ctx context.Context, dsn string) (*PostgresOutput, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return &PostgresOutput{pool: pool}, nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	table := topicToTable(topic)
	query := fmt.Sprintf(
		"INSERT INTO %s (topic, payload, created_at) VALUES ($1, $2, NOW())",
		table,
	)
	if _, err := p.pool.Exec(context.Background(), query, topic, msg); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func (p *PostgresOutput) Close() error {
	p.pool.Close()
	return nil
}

func topicToTable(topic string) string {
	tableMap := map[string]string{
		"listing_rank_events":   "fact_rank_snapshot",
		"listing_rating_events": "fact_rating",
		"listing_import_events": "fact_import",
	}
	if table, ok := tableMap[topic]; ok {
		return table
	}
	return "fact_" + strings.TrimSuffix(topic, "_events")
}
