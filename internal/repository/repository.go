package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is gorm's own sentinel so callers can match either.
	ErrNotFound = gorm.ErrRecordNotFound

	// ErrConstraintViolation marks a write or delete the store refused for
	// referential integrity (RESTRICT) or a check constraint.
	ErrConstraintViolation = errors.New("constraint violation")

	ErrDuplicate = errors.New("duplicate key")
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"

	sqliteForeignKeyFailed = "FOREIGN KEY constraint failed"
)

// classify maps driver errors onto the package sentinels. gorm's
// TranslateError covers most cases; the driver checks catch the rest.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrDuplicate):
		return err
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		// A RESTRICT action reports SQLITE_CONSTRAINT_TRIGGER, not _FOREIGNKEY.
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger, sqlite3.ErrConstraintCheck:
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
		if strings.Contains(sqliteErr.Error(), sqliteForeignKeyFailed) {
			return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
	}

	return err
}

// crud holds the operations every entity repository shares.
type crud[T any] struct {
	db *gorm.DB
}

func (r crud[T]) Create(ctx context.Context, v *T) error {
	return classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error)
}

func (r crud[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (r crud[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, classify(err)
	}
	return &v, nil
}

func (r crud[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

func (r crud[T]) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r crud[T]) update(ctx context.Context, id uint, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
