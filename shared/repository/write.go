package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"

	"github.com/jmoiron/sqlx"
)

func (repo *Repository[T]) exec(ctx context.Context, exec execer, operation, action, query string, arg any) error {
	ctx, scope := repo.newScope(ctx, operation)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, repo.db.Write, "Insert", "insert data", repo.insertQuery(), model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.exec(ctx, sqltx, "InsertTx", "insert data", repo.insertQuery(), model)
}

// InsertBulk writes every model with a single multi-row statement.
func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, repo.db.Write, "InsertBulk", "bulk insert data", repo.insertQuery(), models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, sqltx, "InsertBulkTx", "bulk insert data", repo.insertQuery(), models)
}

func (repo *Repository[T]) updateQuery(ctx context.Context, fields map[string]any, filter dto.FilterGroup) (string, map[string]any) {
	assignments := make([]string, 0, len(fields))

	for _, col := range slices.Sorted(maps.Keys(fields)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	where, args := repo.BuildWhereClause(ctx, filter)
	maps.Copy(args, fields)

	return fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where), args
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	query, args := repo.updateQuery(ctx, fields, filter)

	return repo.exec(ctx, repo.db.Write, "Update", "update data", query, args)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) error {
	query, args := repo.updateQuery(ctx, fields, filter)

	return repo.exec(ctx, sqltx, "UpdateTx", "update data", query, args)
}

func (repo *Repository[T]) deleteQuery(ctx context.Context, filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return "", nil, errRequiredFilter
	}

	return fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args, nil
}

// Delete refuses to run without a filter.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	query, args, err := repo.deleteQuery(ctx, filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, repo.db.Write, "Delete", "delete data", query, args)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	query, args, err := repo.deleteQuery(ctx, filter)
	if err != nil {
		return err
	}

	return repo.exec(ctx, sqltx, "DeleteTx", "delete data", query, args)
}

// WithTx runs fn inside a write transaction. It commits when fn returns nil
// and rolls back otherwise, including when fn panics.
func (repo *Repository[T]) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.newScope(ctx, "WithTx")
	defer scope.End()

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return repo.fail(scope, "begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqltx.Rollback()

			panic(p)
		}

		if err == nil {
			return
		}

		if rollbackErr := sqltx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			logger.ErrorWithStack(rollbackErr)
		}
	}()

	if err = fn(sqltx); err != nil {
		scope.TraceError(err)

		return err
	}

	if err = sqltx.Commit(); err != nil {
		return repo.fail(scope, "commit transaction", err)
	}

	return nil
}
