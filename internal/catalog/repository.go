package catalog

import (
	"context"
	"errors"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Repository defines read access to the product catalog. The catalog is
// read-only for the storefront core; implementations only differ in where the
// records live.
type Repository interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
}
