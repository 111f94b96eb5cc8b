package warehouse

import (
	"context"

	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/warehouse"
)

// WarehouseService handles warehouse administration
type WarehouseService struct {
	repo warehouse.Repository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(repo warehouse.Repository) *WarehouseService {
	return &WarehouseService{repo: repo}
}

// Create creates a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := warehouse.NewWarehouse(req.Name, req.Location, req.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, w); err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// GetByID retrieves a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, id int64) (*WarehouseResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// List retrieves warehouses with pagination
func (s *WarehouseService) List(ctx context.Context, filter WarehouseListFilter) (*shared.Paginated[WarehouseResponse], error) {
	domainFilter := warehouse.Filter{Filter: shared.DefaultFilter(), Active: filter.Active}
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	warehouses, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]WarehouseResponse, len(warehouses))
	for i := range warehouses {
		items[i] = ToWarehouseResponse(&warehouses[i])
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update replaces a warehouse's name, location and capacity
func (s *WarehouseService) Update(ctx context.Context, id int64, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.Update(req.Name, req.Location, req.Capacity); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, w); err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// Delete soft-deletes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, id int64) error {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := w.Deactivate(); err != nil {
		return err
	}
	return s.repo.Save(ctx, w)
}
