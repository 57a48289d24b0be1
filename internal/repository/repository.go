// Package repository wraps gorm with one query per operation. Every read
// goes through the entity's field allowlist, and store errors are
// classified here, once, into juju/errors kinds:
//
//	gorm.ErrRecordNotFound             -> errors.NotFound
//	unique violation (23505)           -> errors.AlreadyExists
//	foreign key violation (23503)      -> errors.NotValid
//
// Anything else is annotated and left unclassified.
package repository

import (
	"context"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/juju/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/monocle-dev/opsdesk/internal/models"
)

type Repository[T models.Record] struct {
	db     *gorm.DB
	name   string
	key    string
	fields []string
}

// New builds a repository for the table behind T. name is used in error
// messages, key is the primary key column and fields the allowlist.
func New[T models.Record](db *gorm.DB, name, key string, fields []string) *Repository[T] {
	return &Repository[T]{
		db:     db,
		name:   name,
		key:    key,
		fields: fields,
	}
}

func (r *Repository[T]) Name() string { return r.name }

func (r *Repository[T]) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T)).Select(r.fields)
}

func eq(column string, value any) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: column}, Value: value}
}

func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	records := make([]T, 0)

	err := r.query(ctx).Order("created_at").Order(r.key).Find(&records).Error
	if err != nil {
		return nil, r.classify(err, "listing %ss", r.name)
	}
	return records, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return r.FindBy(ctx, r.key, id)
}

// FindBy returns the single record whose column equals value.
func (r *Repository[T]) FindBy(ctx context.Context, column, value string) (*T, error) {
	var record T

	err := r.query(ctx).Where(eq(column, value)).Take(&record).Error
	if err != nil {
		return nil, r.classify(err, "%s %q", r.name, value)
	}
	return &record, nil
}

func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, r.classify(err, "counting %ss", r.name)
	}
	return n, nil
}

// Create inserts record and returns the stored row as seen through the
// allowlist.
func (r *Repository[T]) Create(ctx context.Context, record *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, r.classify(err, "%s", r.name)
	}
	return r.FindByID(ctx, (*record).Key())
}

// Update applies columns to the row identified by id. Columns not named are
// left unchanged; an empty map only checks that the row exists.
func (r *Repository[T]) Update(ctx context.Context, id string, columns map[string]any) (*T, error) {
	if len(columns) > 0 {
		res := r.db.WithContext(ctx).Model(new(T)).Where(eq(r.key, id)).Updates(columns)
		if res.Error != nil {
			return nil, r.classify(res.Error, "%s", r.name)
		}
		if res.RowsAffected == 0 {
			return nil, errors.NotFoundf("%s %q", r.name, id)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where(eq(r.key, id)).Delete(new(T))
	if res.Error != nil {
		return r.classify(res.Error, "%s %q", r.name, id)
	}
	if res.RowsAffected == 0 {
		return errors.NotFoundf("%s %q", r.name, id)
	}
	return nil
}

func (r *Repository[T]) classify(err error, format string, args ...any) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.NotFoundf(format, args...)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.AlreadyExistsf(format, args...)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.NotValidf("reference of "+format, args...)
	}

	// Raw pgx errors when the dialector is not translating.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errors.AlreadyExistsf(format, args...)
		case pgerrcode.ForeignKeyViolation:
			return errors.NotValidf("reference of "+format, args...)
		}
	}

	return errors.Annotatef(err, format, args...)
}
