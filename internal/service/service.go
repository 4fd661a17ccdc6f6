package service

import (
	"context"

	"gamehub-backend/internal/repository"
)

// Service is a one-to-one pass-through to a Repository. Entity services embed
// it and override where cross-cutting rules apply (typed not-found errors,
// hashing, duplicate checks).
type Service[T any] struct {
	Repo *repository.Repository[T]
}

func New[T any](repo *repository.Repository[T]) *Service[T] {
	return &Service[T]{Repo: repo}
}

func (s *Service[T]) Get(ctx context.Context, id uint) (*T, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service[T]) GetAll(ctx context.Context, skip, limit int, orderBy string, descending bool) ([]T, error) {
	return s.Repo.GetAll(ctx, skip, limit, orderBy, descending)
}

func (s *Service[T]) Create(ctx context.Context, entity *T) error {
	return s.Repo.Create(ctx, entity)
}

func (s *Service[T]) Update(ctx context.Context, id uint, changes map[string]interface{}) (*T, error) {
	return s.Repo.Update(ctx, id, changes)
}

func (s *Service[T]) Delete(ctx context.Context, id uint) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

func (s *Service[T]) FilterBy(ctx context.Context, filters map[string]interface{}, skip, limit int) ([]T, error) {
	return s.Repo.FilterBy(ctx, filters, skip, limit)
}

func (s *Service[T]) GetOneBy(ctx context.Context, filters map[string]interface{}) (*T, error) {
	return s.Repo.GetOneBy(ctx, filters)
}

func (s *Service[T]) Count(ctx context.Context, filters map[string]interface{}) (int64, error) {
	return s.Repo.Count(ctx, filters)
}
