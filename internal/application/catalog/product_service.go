package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	unitPrice := decimal.Zero
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Category, req.Unit, unitPrice, req.ReorderLevel)
	if err != nil {
		return nil, err
	}

	// Check if SKU already exists
	exists, err := s.productRepo.ExistsBySKU(ctx, product.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := catalog.ProductFilter{
		Filter:   shared.DefaultFilter(),
		Category: filter.Category,
		Active:   filter.Active,
	}
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update updates a product's descriptive and pricing fields
func (s *ProductService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, category, unit := product.Name, product.Category, product.Unit
	unitPrice, reorderLevel := product.UnitPrice, product.ReorderLevel
	if req.Name != nil {
		name = *req.Name
	}
	if req.Category != nil {
		category = *req.Category
	}
	if req.Unit != nil {
		unit = *req.Unit
	}
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	if req.ReorderLevel != nil {
		reorderLevel = *req.ReorderLevel
	}

	if err := product.Update(name, category, unit, unitPrice, reorderLevel); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete soft-deletes a product. Its stock rows stay but drop out of listings.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.Deactivate(); err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}
