// Package viewstore хранит состояния смонтированных страниц (view).
// Два бэкенда: память процесса и Redis, когда инстансов несколько.
package viewstore

import (
	"context"

	"github.com/xela07ax/blytz-console/internal/domain"
)

// UpdateFunc меняет состояние на месте. Ошибка отменяет изменение целиком.
type UpdateFunc func(v *domain.ViewState) error

type Store interface {
	Create(ctx context.Context, v *domain.ViewState) error
	// Get возвращает копию; domain.ErrViewNotFound, если view нет или он истёк.
	Get(ctx context.Context, id string) (*domain.ViewState, error)
	// Update атомарно применяет fn и возвращает новое состояние.
	Update(ctx context.Context, id string, fn UpdateFunc) (*domain.ViewState, error)
	Delete(ctx context.Context, id string) error
}

// clone — копия, чтобы вызывающий не мог править хранилище напрямую.
func clone(v *domain.ViewState) *domain.ViewState {
	c := *v
	return &c
}
