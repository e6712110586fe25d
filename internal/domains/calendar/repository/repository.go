package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/internal/domains/calendar/model"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/shared/logger"
)

// Calendar is the persistence layer for property calendar days. It carries
// no business rules; hold and conflict decisions belong to the availability
// service. Write operations that participate in the locking protocol run
// inside InTx so the service can lock the touched rows first.
type Calendar interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	GetRange(ctx context.Context, propertyID string, startDate, endDate time.Time) ([]model.CalendarDay, error)
	ReleaseByBooking(ctx context.Context, bookingID string, now time.Time) error
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
	Unblock(ctx context.Context, propertyID string, dates []time.Time, now time.Time) error
}

// Tx exposes the row-locking primitives available inside a transaction.
type Tx interface {
	LockRange(ctx context.Context, propertyID string, dates []time.Time) ([]model.CalendarDay, error)
	LockHolds(ctx context.Context, propertyID, bookingID string, dates []time.Time, statuses []model.LockStatus) ([]model.CalendarDay, error)
	UpsertHolds(ctx context.Context, propertyID, bookingID string, dates []time.Time, expiresAt, now time.Time) error
	ConfirmHolds(ctx context.Context, propertyID, bookingID string, dates []time.Time, now time.Time) error
	ExtendHolds(ctx context.Context, propertyID, bookingID string, dates []time.Time, expiresAt, now time.Time) error
	UpsertBlocks(ctx context.Context, propertyID string, dates []time.Time, reason string, now time.Time) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otl otel.Otel) Calendar {
	return &repositoryImpl{
		db:   db,
		otel: otl,
	}
}

func (repo *repositoryImpl) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".InTx")
	defer scope.End()

	sqltx, err := repo.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	if err := fn(ctx, &txImpl{tx: sqltx, otel: repo.otel}); err != nil {
		if rbErr := sqltx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err
	}

	if err := sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) GetRange(ctx context.Context, propertyID string, startDate, endDate time.Time) ([]model.CalendarDay, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetRange")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE %s = $1 AND %s >= $2 AND %s < $3 ORDER BY %s",
		model.TableName, model.FieldPropertyID, model.FieldDate, model.FieldDate, model.FieldDate,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	days := []model.CalendarDay{}

	err := repo.db.Read.SelectContext(ctx, &days, query, propertyID, model.Normalize(startDate), model.Normalize(endDate))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get calendar range (%s): %w", model.EntityName, err)
	}

	return days, nil
}

func (repo *repositoryImpl) ReleaseByBooking(ctx context.Context, bookingID string, now time.Time) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ReleaseByBooking")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = $1, %s = NULL, %s = NULL, %s = $2 WHERE %s = $3",
		model.TableName, model.FieldLockStatus, model.FieldLockBookingID, model.FieldLockExpiresAt,
		model.FieldUpdatedAt, model.FieldLockBookingID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.ExecContext(ctx, query, model.LockStatusNone, now, bookingID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to release locks for booking (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ReleaseExpired")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = $1, %s = NULL, %s = NULL, %s = $2 WHERE %s = $3 AND %s <= $4",
		model.TableName, model.FieldLockStatus, model.FieldLockBookingID, model.FieldLockExpiresAt,
		model.FieldUpdatedAt, model.FieldLockStatus, model.FieldLockExpiresAt,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, model.LockStatusNone, now, model.LockStatusSoftHold, now)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to release expired holds (%s): %w", model.EntityName, err)
	}

	released, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count released holds (%s): %w", model.EntityName, err)
	}

	return int(released), nil
}

func (repo *repositoryImpl) Unblock(ctx context.Context, propertyID string, dates []time.Time, now time.Time) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Unblock")
	defer scope.End()

	query, args, err := sqlx.In(
		fmt.Sprintf(
			"UPDATE %s SET %s = true, %s = NULL, %s = ? WHERE %s = ? AND %s IN (?)",
			model.TableName, model.FieldIsAvailable, model.FieldReasonBlocked,
			model.FieldUpdatedAt, model.FieldPropertyID, model.FieldDate,
		),
		now, propertyID, dates,
	)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to build unblock query (%s): %w", model.EntityName, err)
	}

	query = repo.db.Write.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.ExecContext(ctx, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to unblock dates (%s): %w", model.EntityName, err)
	}

	return nil
}

type txImpl struct {
	tx   *sqlx.Tx
	otel otel.Otel
}

func (t *txImpl) LockRange(ctx context.Context, propertyID string, dates []time.Time) ([]model.CalendarDay, error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".LockRange")
	defer scope.End()

	query, args, err := sqlx.In(
		fmt.Sprintf(
			"SELECT * FROM %s WHERE %s = ? AND %s IN (?) ORDER BY %s FOR UPDATE",
			model.TableName, model.FieldPropertyID, model.FieldDate, model.FieldDate,
		),
		propertyID, dates,
	)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build lock range query (%s): %w", model.EntityName, err)
	}

	query = t.tx.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	days := []model.CalendarDay{}

	if err := t.tx.SelectContext(ctx, &days, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to lock calendar range (%s): %w", model.EntityName, err)
	}

	return days, nil
}

func (t *txImpl) LockHolds(ctx context.Context, propertyID, bookingID string, dates []time.Time, statuses []model.LockStatus) ([]model.CalendarDay, error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".LockHolds")
	defer scope.End()

	query, args, err := sqlx.In(
		fmt.Sprintf(
			"SELECT * FROM %s WHERE %s = ? AND %s = ? AND %s IN (?) AND %s IN (?) ORDER BY %s FOR UPDATE",
			model.TableName, model.FieldPropertyID, model.FieldLockBookingID, model.FieldLockStatus,
			model.FieldDate, model.FieldDate,
		),
		propertyID, bookingID, statuses, dates,
	)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build lock holds query (%s): %w", model.EntityName, err)
	}

	query = t.tx.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	days := []model.CalendarDay{}

	if err := t.tx.SelectContext(ctx, &days, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to lock holds (%s): %w", model.EntityName, err)
	}

	return days, nil
}

// UpsertHolds places a SOFT_HOLD on every date. FOR UPDATE in LockRange only
// locks rows that already exist, so a row inserted by a concurrent hold after
// the range check reaches the DO UPDATE path here. The update therefore only
// applies to free or lapsed days; a date the guard skips reports a conflict
// instead of overwriting the other booking's lock.
func (t *txImpl) UpsertHolds(ctx context.Context, propertyID, bookingID string, dates []time.Time, expiresAt, now time.Time) error {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UpsertHolds")
	defer scope.End()

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, true, $4, $5, $6, $7, $7)
		 ON CONFLICT (%s, %s) DO UPDATE SET
		 %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s
		 WHERE %s.%s
		 AND (%s.%s = $8 OR (%s.%s = $4 AND %s.%s <= $7))`,
		model.TableName,
		model.FieldID, model.FieldPropertyID, model.FieldDate, model.FieldIsAvailable,
		model.FieldLockStatus, model.FieldLockBookingID, model.FieldLockExpiresAt,
		constant.FieldCreatedAt, model.FieldUpdatedAt,
		model.FieldPropertyID, model.FieldDate,
		model.FieldLockStatus, model.FieldLockStatus,
		model.FieldLockBookingID, model.FieldLockBookingID,
		model.FieldLockExpiresAt, model.FieldLockExpiresAt,
		model.FieldUpdatedAt, model.FieldUpdatedAt,
		model.TableName, model.FieldIsAvailable,
		model.TableName, model.FieldLockStatus,
		model.TableName, model.FieldLockStatus,
		model.TableName, model.FieldLockExpiresAt,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	for _, date := range dates {
		result, err := t.tx.ExecContext(ctx, query, uuid.NewString(), propertyID, date, model.LockStatusSoftHold, bookingID, expiresAt, now, model.LockStatusNone)
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to upsert hold for %s (%s): %w", date.Format(constant.CalendarDateFormat), model.EntityName, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to check hold upsert for %s (%s): %w", date.Format(constant.CalendarDateFormat), model.EntityName, err)
		}

		if affected == 0 {
			return failure.Conflict(fmt.Sprintf("cannot create hold: %s was taken by another request", date.Format(constant.CalendarDateFormat))) //nolint:wrapcheck
		}
	}

	return nil
}

func (t *txImpl) ConfirmHolds(ctx context.Context, propertyID, bookingID string, dates []time.Time, now time.Time) error {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ConfirmHolds")
	defer scope.End()

	query, args, err := sqlx.In(
		fmt.Sprintf(
			"UPDATE %s SET %s = ?, %s = NULL, %s = ? WHERE %s = ? AND %s = ? AND %s = ? AND %s IN (?)",
			model.TableName, model.FieldLockStatus, model.FieldLockExpiresAt, model.FieldUpdatedAt,
			model.FieldPropertyID, model.FieldLockBookingID, model.FieldLockStatus, model.FieldDate,
		),
		model.LockStatusConfirmed, now, propertyID, bookingID, model.LockStatusSoftHold, dates,
	)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to build confirm holds query (%s): %w", model.EntityName, err)
	}

	query = t.tx.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to confirm holds (%s): %w", model.EntityName, err)
	}

	return nil
}

func (t *txImpl) ExtendHolds(ctx context.Context, propertyID, bookingID string, dates []time.Time, expiresAt, now time.Time) error {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ExtendHolds")
	defer scope.End()

	query, args, err := sqlx.In(
		fmt.Sprintf(
			"UPDATE %s SET %s = ?, %s = ? WHERE %s = ? AND %s = ? AND %s = ? AND %s IN (?)",
			model.TableName, model.FieldLockExpiresAt, model.FieldUpdatedAt,
			model.FieldPropertyID, model.FieldLockBookingID, model.FieldLockStatus, model.FieldDate,
		),
		expiresAt, now, propertyID, bookingID, model.LockStatusSoftHold, dates,
	)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to build extend holds query (%s): %w", model.EntityName, err)
	}

	query = t.tx.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to extend holds (%s): %w", model.EntityName, err)
	}

	return nil
}

func (t *txImpl) UpsertBlocks(ctx context.Context, propertyID string, dates []time.Time, reason string, now time.Time) error {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UpsertBlocks")
	defer scope.End()

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, false, $4, $5, $6, $6)
		 ON CONFLICT (%s, %s) DO UPDATE SET
		 %s = false, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		model.TableName,
		model.FieldID, model.FieldPropertyID, model.FieldDate, model.FieldIsAvailable,
		model.FieldReasonBlocked, model.FieldLockStatus, constant.FieldCreatedAt, model.FieldUpdatedAt,
		model.FieldPropertyID, model.FieldDate,
		model.FieldIsAvailable,
		model.FieldReasonBlocked, model.FieldReasonBlocked,
		model.FieldUpdatedAt, model.FieldUpdatedAt,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	for _, date := range dates {
		_, err := t.tx.ExecContext(ctx, query, uuid.NewString(), propertyID, date, reason, model.LockStatusNone, now)
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to block %s (%s): %w", date.Format(constant.CalendarDateFormat), model.EntityName, err)
		}
	}

	return nil
}
