package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"DemandCast/internal/domain/models"
	domrepo "DemandCast/internal/domain/repository"
	pkgch "DemandCast/pkg/clickhouse"
	applogger "DemandCast/pkg/logger"
)

// CHMovementStore implements MovementStore backed by ClickHouse.
type CHMovementStore struct {
	db            *sql.DB
	l             *applogger.Logger
	movementTable string
	productTable  string
}

func NewCHMovementStore(ch *pkgch.Client, movementTable, productTable string) *CHMovementStore {
	if movementTable == "" {
		movementTable = "demandcast.stock_movements"
	}
	if productTable == "" {
		productTable = "demandcast.products"
	}
	return &CHMovementStore{db: ch.DB(), movementTable: movementTable, productTable: productTable}
}

// SetLogger injects a structured logger.
func (s *CHMovementStore) SetLogger(l *applogger.Logger) { s.l = l }

var _ domrepo.MovementStore = (*CHMovementStore)(nil)

// SchemaStatements returns idempotent DDL for the movement log tables.
func SchemaStatements() []string {
	return []string{
		`CREATE DATABASE IF NOT EXISTS demandcast`,
		`CREATE TABLE IF NOT EXISTS demandcast.stock_movements (
			ts DateTime,
			product_id String,
			location_id String,
			qty Float64,
			org_id String
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(ts)
		ORDER BY (product_id, location_id, ts)`,
		`CREATE TABLE IF NOT EXISTS demandcast.products (
			id String,
			name String
		) ENGINE = ReplacingMergeTree()
		ORDER BY id`,
	}
}

func (s *CHMovementStore) Movements(ctx context.Context, productID, locationID string, from, to time.Time) ([]models.Movement, error) {
	start := time.Now()

	q := fmt.Sprintf(`
        SELECT ts, product_id, location_id, qty, org_id
        FROM %s
        WHERE product_id = ? AND ts >= ? AND ts <= ?`, s.movementTable)
	args := []interface{}{productID, from, to}
	if locationID != "" {
		q += " AND location_id = ?"
		args = append(args, locationID)
	}
	q += " ORDER BY ts ASC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse movements query error",
				applogger.String("product", productID),
				applogger.String("location", locationID),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get movements: %w", err)
	}
	defer rows.Close()

	out := make([]models.Movement, 0, 1024)
	for rows.Next() {
		var m models.Movement
		if err := rows.Scan(&m.Date, &m.ProductID, &m.LocationID, &m.Quantity, &m.OrgID); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if s.l != nil {
		s.l.Debug("clickhouse movements ok",
			applogger.String("product", productID),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHMovementStore) Product(ctx context.Context, productID string) (models.Product, error) {
	q := fmt.Sprintf("SELECT id, name FROM %s WHERE id = ? LIMIT 1", s.productTable)

	var p models.Product
	err := s.db.QueryRowContext(ctx, q, productID).Scan(&p.ID, &p.Name)
	if err == sql.ErrNoRows {
		// Unknown products still forecast; name falls back to the ID.
		return models.Product{ID: productID, Name: productID}, nil
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *CHMovementStore) StoreBatch(ctx context.Context, movements []*models.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	// Multi-row VALUES insert to reduce round-trips, chunked at 2000 rows.
	const chunkSize = 2000
	for start := 0; start < len(movements); start += chunkSize {
		end := start + chunkSize
		if end > len(movements) {
			end = len(movements)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, m := range movements[start:end] {
			if m == nil || m.ProductID == "" || m.Date.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args, m.Date, m.ProductID, m.LocationID, m.Quantity, m.OrgID)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, product_id, location_id, qty, org_id) VALUES %s",
			s.movementTable, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("store movements: %w", err)
		}
	}
	return nil
}

func (s *CHMovementStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHMovementStore) Close() error {
	return nil // connection pool owned by pkg/clickhouse
}
