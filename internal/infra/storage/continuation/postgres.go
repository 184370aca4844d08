package continuation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/pkg/psqlbuilder"
)

const tableName = "booking_continuations"

// PostgresStore хранилище снапшотов в PostgreSQL
type PostgresStore struct {
	db   DBExecutor
	time TimeProvider
}

// NewPostgresStore создает новый экземпляр хранилища
func NewPostgresStore(db DBExecutor, timeProvider TimeProvider) *PostgresStore {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &PostgresStore{db: db, time: timeProvider}
}

// Save записывает снапшот, перезаписывая существующий с тем же ключом
func (s *PostgresStore) Save(ctx context.Context, key string, snapshot *domain.ContinuationSnapshot, ttl time.Duration) error {
	payload, err := Encode(snapshot)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("continuation_key", "payload", "expires_at").
		Values(key, string(payload), s.time.Now().Add(ttl)).
		Suffix("ON CONFLICT (continuation_key) DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// Take читает снапшот и удаляет его одним запросом. Повторный Take вернет ErrNotFound.
func (s *PostgresStore) Take(ctx context.Context, key string) (*domain.ContinuationSnapshot, error) {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"continuation_key": key}).
		Where(squirrel.Gt{"expires_at": s.time.Now()}).
		Suffix("RETURNING payload").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Take - build delete query: %v", ErrBuildQuery, err)
	}

	var payload []byte
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: Take - execute delete: %v", ErrExecQuery, err)
	}

	return Decode(payload)
}

// Delete удаляет снапшот. Отсутствие записи не считается ошибкой.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"continuation_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// PurgeExpired удаляет истекшие снапшоты и возвращает их количество
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.LtOrEq{"expires_at": s.time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - execute delete: %v", ErrExecQuery, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - rows affected: %v", ErrExecQuery, err)
	}
	return rows, nil
}
