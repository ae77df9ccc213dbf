package repository

import (
	"context"

	"github.com/raidergo/checkout/internal/domain/model"
)

// CourseRepository describes catalog reads used by checkout.
type CourseRepository interface {
	GetByID(ctx context.Context, id string) (*model.Course, error)
	ListActive(ctx context.Context) ([]model.Course, error)
}
