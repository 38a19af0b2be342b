package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ssis-api/internal/query"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// TableDefinition specializes TableRepository for one resource table.
type TableDefinition[T any] struct {
	Table string
	Key   string
	// Columns are returned by every read and RETURNING clause.
	Columns []string
	// Writable are the columns set by create and update, in the order Values returns them.
	Writable []string
	Values   func(row *T) []interface{}
	List     query.Table
}

// TableRepository implements CRUD by natural key for a single table.
type TableRepository[T any] struct {
	db      *sqlx.DB
	def     TableDefinition[T]
	metrics queryObserver
}

// NewTableRepository constructs a TableRepository. metrics may be nil.
func NewTableRepository[T any](db *sqlx.DB, def TableDefinition[T], metrics queryObserver) *TableRepository[T] {
	return &TableRepository[T]{db: db, def: def, metrics: metrics}
}

// List returns one page of rows plus the total number of matching rows.
func (r *TableRepository[T]) List(ctx context.Context, params query.Params) ([]T, int, error) {
	stmt, err := r.def.List.Build(params)
	if err != nil {
		return nil, 0, fmt.Errorf("build %s list: %w", r.def.Table, err)
	}

	defer r.observe("list", time.Now())

	var total int
	if err := r.db.GetContext(ctx, &total, stmt.CountSQL, stmt.CountArgs...); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.def.Table, err)
	}

	rows := make([]T, 0, stmt.Limit)
	if err := r.db.SelectContext(ctx, &rows, stmt.SQL, stmt.Args...); err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", r.def.Table, err)
	}
	return rows, total, nil
}

// FindByKey returns the row with the given natural key or sql.ErrNoRows.
func (r *TableRepository[T]) FindByKey(ctx context.Context, key string) (*T, error) {
	statement, args, err := psql.Select(r.def.Columns...).From(r.def.Table).Where(sq.Eq{r.def.Key: key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s lookup: %w", r.def.Table, err)
	}

	defer r.observe("find", time.Now())

	var row T
	if err := r.db.GetContext(ctx, &row, statement, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find %s: %w", r.def.Table, err)
	}
	return &row, nil
}

// Exists reports whether a row with the natural key is stored.
func (r *TableRepository[T]) Exists(ctx context.Context, key string) (bool, error) {
	statement := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = $1 LIMIT 1", r.def.Table, r.def.Key)

	defer r.observe("exists", time.Now())

	var exists int
	if err := r.db.GetContext(ctx, &exists, statement, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check %s key: %w", r.def.Table, err)
	}
	return true, nil
}

// Create inserts row and returns the stored record.
func (r *TableRepository[T]) Create(ctx context.Context, row *T) (*T, error) {
	statement, args, err := psql.Insert(r.def.Table).
		Columns(r.def.Writable...).
		Values(r.def.Values(row)...).
		Suffix(r.returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s insert: %w", r.def.Table, err)
	}

	defer r.observe("create", time.Now())

	var created T
	if err := r.db.GetContext(ctx, &created, statement, args...); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.def.Table, err)
	}
	return &created, nil
}

// Update rewrites the row stored under currentKey, which may rename the key.
func (r *TableRepository[T]) Update(ctx context.Context, currentKey string, row *T) (*T, error) {
	builder := psql.Update(r.def.Table)
	values := r.def.Values(row)
	for i, column := range r.def.Writable {
		builder = builder.Set(column, values[i])
	}
	statement, args, err := builder.Where(sq.Eq{r.def.Key: currentKey}).Suffix(r.returning()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s update: %w", r.def.Table, err)
	}

	return r.returningOne(ctx, "update", statement, args)
}

// Delete removes the row and returns it as it was stored.
func (r *TableRepository[T]) Delete(ctx context.Context, key string) (*T, error) {
	statement, args, err := psql.Delete(r.def.Table).Where(sq.Eq{r.def.Key: key}).Suffix(r.returning()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s delete: %w", r.def.Table, err)
	}

	return r.returningOne(ctx, "delete", statement, args)
}

func (r *TableRepository[T]) returningOne(ctx context.Context, op, statement string, args []interface{}) (*T, error) {
	defer r.observe(op, time.Now())

	var row T
	if err := r.db.GetContext(ctx, &row, statement, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("%s %s: %w", op, r.def.Table, err)
	}
	return &row, nil
}

func (r *TableRepository[T]) returning() string {
	return "RETURNING " + strings.Join(r.def.Columns, ", ")
}

func (r *TableRepository[T]) observe(op string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.ObserveDBQuery(r.def.Table+"."+op, time.Since(start))
}
