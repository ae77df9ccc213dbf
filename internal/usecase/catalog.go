package usecase

import (
	"context"

	"github.com/raidergo/checkout/internal/catalog"
	domainErrors "github.com/raidergo/checkout/internal/domain/errors"
	"github.com/raidergo/checkout/internal/domain/model"
	"github.com/raidergo/checkout/internal/domain/repository"
)

// CatalogUseCase serves course reads through the TTL cache.
type CatalogUseCase struct {
	courses repository.CourseRepository
	cache   *catalog.Cache
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(courses repository.CourseRepository, cache *catalog.Cache) *CatalogUseCase {
	return &CatalogUseCase{courses: courses, cache: cache}
}

// GetCourse returns one purchasable course, preferring the cache.
func (u *CatalogUseCase) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	if course, ok := u.cache.Get(id); ok {
		return course, nil
	}

	course, err := u.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.Active {
		return nil, domainErrors.ErrNotFound
	}

	u.cache.Put(*course)
	return course, nil
}

// ListActive returns the purchasable catalog.
func (u *CatalogUseCase) ListActive(ctx context.Context) ([]model.Course, error) {
	return u.courses.ListActive(ctx)
}

// Refresh re-warms the cache with the active catalog; used by the
// background refresher.
func (u *CatalogUseCase) Refresh(ctx context.Context) error {
	courses, err := u.courses.ListActive(ctx)
	if err != nil {
		return err
	}
	u.cache.Replace(courses)
	return nil
}
