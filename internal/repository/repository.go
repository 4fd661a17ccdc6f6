package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the uniform data-access layer, instantiated once per entity
// type. Not-found is a nil result at this layer, never an error; typed
// not-found errors are raised by services.
//
// Soft deletes are a caller concern: Delete is always a hard delete by
// primary key, status flips go through Update.
type Repository[T any] struct {
	db       *gorm.DB
	sortable map[string]struct{}
}

// New builds a repository. sortableFields is the explicit allow-list of
// column names GetAll may order by; an order_by outside the list is silently
// ignored rather than rejected.
func New[T any](db *gorm.DB, sortableFields ...string) *Repository[T] {
	sortable := make(map[string]struct{}, len(sortableFields))
	for _, f := range sortableFields {
		sortable[f] = struct{}{}
	}
	return &Repository[T]{db: db, sortable: sortable}
}

// DB exposes the underlying handle for queries the CRUD contract cannot
// express (ranges, OR composition, aggregates).
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// Get returns the entity by primary key, or nil when it does not exist.
func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetAll returns a page of entities. limit <= 0 means no limit; bounds are
// caller-supplied and not clamped here.
func (r *Repository[T]) GetAll(ctx context.Context, skip, limit int, orderBy string, descending bool) ([]T, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	if orderBy != "" {
		if _, ok := r.sortable[orderBy]; ok {
			q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: orderBy}, Desc: descending})
		}
	}
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FilterBy returns entities matching every filter exactly (conjunction only).
func (r *Repository[T]) FilterBy(ctx context.Context, filters map[string]interface{}, skip, limit int) ([]T, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	if len(filters) > 0 {
		q = q.Where(filters)
	}
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []T
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetOneBy returns the first entity matching the filters, or nil.
func (r *Repository[T]) GetOneBy(ctx context.Context, filters map[string]interface{}) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where(filters).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Create persists the entity and fills its generated id.
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Update applies patch semantics: only the keys present in changes are
// mutated. Returns nil when the id does not exist. No value validation here.
func (r *Repository[T]) Update(ctx context.Context, id uint, changes map[string]interface{}) (*T, error) {
	entity, err := r.Get(ctx, id)
	if err != nil || entity == nil {
		return nil, err
	}
	if len(changes) > 0 {
		if err := r.db.WithContext(ctx).Model(entity).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, id)
}

// Delete hard-deletes by primary key. Returns whether a row was removed.
func (r *Repository[T]) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Count returns the number of entities matching the filters.
func (r *Repository[T]) Count(ctx context.Context, filters map[string]interface{}) (int64, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	if len(filters) > 0 {
		q = q.Where(filters)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Exists reports whether any entity matches the filters.
func (r *Repository[T]) Exists(ctx context.Context, filters map[string]interface{}) (bool, error) {
	entity, err := r.GetOneBy(ctx, filters)
	if err != nil {
		return false, err
	}
	return entity != nil, nil
}
