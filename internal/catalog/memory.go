package catalog

import (
	"context"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
)

// MemoryRepository serves the catalog from a slice. It is the default backend
// for the demo storefront and for tests.
type MemoryRepository struct {
	products []domain.Product
	byID     map[int64]domain.Product
}

func NewMemoryRepository(products []domain.Product) *MemoryRepository {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &MemoryRepository{products: products, byID: byID}
}

func (r *MemoryRepository) GetAllProducts(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *MemoryRepository) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return domain.Product{}, ErrProductNotFound
}

// DefaultProducts is the demo storefront's built-in catalog.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Smartphone Premium",
			Price:       1299.99,
			ImageURL:    "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=300&h=300&fit=crop",
			Description: "Smartphone com tecnologia avançada e design moderno",
			Category:    "eletrônicos",
		},
		{
			ID:          2,
			Name:        "Notebook Gamer",
			Price:       2499.99,
			ImageURL:    "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=300&h=300&fit=crop",
			Description: "Notebook para jogos com alta performance",
			Category:    "eletrônicos",
		},
		{
			ID:          3,
			Name:        "Fone Bluetooth",
			Price:       199.99,
			ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop",
			Description: "Fone de ouvido sem fio com cancelamento de ruído",
			Category:    "eletrônicos",
		},
		{
			ID:          4,
			Name:        "Smartwatch",
			Price:       599.99,
			ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300&h=300&fit=crop",
			Description: "Relógio inteligente com monitoramento de saúde",
			Category:    "eletrônicos",
		},
		{
			ID:          5,
			Name:        "Câmera Digital",
			Price:       899.99,
			ImageURL:    "https://images.unsplash.com/photo-1502920917128-1aa500764cbd?w=300&h=300&fit=crop",
			Description: "Câmera profissional para fotografia",
			Category:    "eletrônicos",
		},
		{
			ID:          6,
			Name:        "Tablet Pro",
			Price:       799.99,
			ImageURL:    "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=300&h=300&fit=crop",
			Description: "Tablet profissional para trabalho e entretenimento",
			Category:    "eletrônicos",
		},
	}
}
