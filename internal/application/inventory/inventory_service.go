package inventory

import (
	"context"
	"errors"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/warehouse"
	"github.com/stockroom/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// InventoryService handles stock ledger operations and stock reporting
type InventoryService struct {
	txScope       TransactionScope
	stockRepo     inventory.StockEntryRepository
	movementRepo  inventory.MovementRepository
	productRepo   catalog.ProductRepository
	warehouseRepo warehouse.Repository
	cache         StatisticsCache
	metrics       Metrics
	logger        *zap.Logger
}

// NewInventoryService creates a new InventoryService.
// Reads go through the given repositories; writes run inside txScope.
func NewInventoryService(
	txScope TransactionScope,
	stockRepo inventory.StockEntryRepository,
	movementRepo inventory.MovementRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo warehouse.Repository,
	logger *zap.Logger,
) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		txScope:       txScope,
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		metrics:       NoopMetrics(),
		logger:        logger,
	}
}

// SetStatisticsCache enables caching of the statistics endpoint
func (s *InventoryService) SetStatisticsCache(cache StatisticsCache) {
	s.cache = cache
}

// SetMetrics sets the metrics sink
func (s *InventoryService) SetMetrics(metrics Metrics) {
	if metrics == nil {
		metrics = NoopMetrics()
	}
	s.metrics = metrics
}

// Get retrieves the stock entry of a product at a warehouse
func (s *InventoryService) Get(ctx context.Context, productID, warehouseID int64) (*StockEntryResponse, error) {
	entry, err := s.stockRepo.FindByKey(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	resp := ToStockEntryResponse(entry)
	return &resp, nil
}

// Open creates the stock entry for a product/warehouse pair
func (s *InventoryService) Open(ctx context.Context, req OpenStockRequest) (*StockEntryResponse, error) {
	var entry *inventory.StockEntry
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := RequireActive(ctx, repos, req.ProductID, req.WarehouseID); err != nil {
			return err
		}
		var err error
		entry, err = NewLedger(repos).Open(ctx, req.ProductID, req.WarehouseID, req.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStatistics(ctx)
	if req.Quantity > 0 {
		s.metrics.RecordUnitsMoved(ctx, string(inventory.MovementTypeOpening), req.Quantity)
	}
	s.logger.Info("Stock entry opened",
		zap.Int64("product_id", entry.ProductID),
		zap.Int64("warehouse_id", entry.WarehouseID),
		zap.Int64("quantity", entry.OnHand),
	)

	resp := ToStockEntryResponse(entry)
	return &resp, nil
}

// Adjust applies a manual correction and records it for audit
func (s *InventoryService) Adjust(ctx context.Context, req AdjustStockRequest) (*AdjustmentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "adjust")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrProductID, req.ProductID,
		telemetry.SpanAttrWarehouseID, req.WarehouseID,
		telemetry.SpanAttrQuantity, req.QuantityChange,
		telemetry.SpanAttrReason, req.Reason,
	)

	reason, err := inventory.ParseAdjustmentReason(req.Reason)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var (
		adjustment *inventory.Adjustment
		entry      *inventory.StockEntry
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		adjustment, entry, err = NewLedger(repos).Adjust(ctx, inventory.AdjustCommand{
			ProductID:   req.ProductID,
			WarehouseID: req.WarehouseID,
			Delta:       req.QuantityChange,
			Reason:      reason,
			Notes:       req.Notes,
			CreatedBy:   req.CreatedBy,
		})
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if errors.Is(err, shared.ErrInsufficientStock) {
			s.logger.Warn("Stock adjustment rejected",
				zap.Int64("product_id", req.ProductID),
				zap.Int64("warehouse_id", req.WarehouseID),
				zap.Int64("quantity_change", req.QuantityChange),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.invalidateStatistics(ctx)
	s.metrics.RecordAdjustment(ctx, reason.String(), req.QuantityChange)
	s.logger.Info("Stock adjustment recorded",
		zap.Int64("adjustment_id", adjustment.ID),
		zap.Int64("product_id", adjustment.ProductID),
		zap.Int64("warehouse_id", adjustment.WarehouseID),
		zap.Int64("previous_quantity", adjustment.PreviousOnHand),
		zap.Int64("new_quantity", adjustment.NewOnHand),
		zap.String("reason", reason.String()),
	)

	return &AdjustmentResult{
		Adjustment: ToAdjustmentResponse(adjustment),
		Inventory:  ToStockEntryResponse(entry),
		Difference: adjustment.QuantityChange,
	}, nil
}

// SetReserved replaces the reserved quantity of a stock entry
func (s *InventoryService) SetReserved(ctx context.Context, req SetReservedRequest) (*StockEntryResponse, error) {
	var entry *inventory.StockEntry
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		entry, err = NewLedger(repos).SetReserved(ctx, req.ProductID, req.WarehouseID, req.ReservedQuantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStatistics(ctx)

	resp := ToStockEntryResponse(entry)
	return &resp, nil
}

// List returns stock views of active products and warehouses
func (s *InventoryService) List(ctx context.Context, filter InventoryListFilter) ([]StockViewResponse, error) {
	status := inventory.StockStatus(filter.Status)
	if status != "" && !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown stock status: "+filter.Status)
	}

	views, err := s.stockRepo.FindViews(ctx, inventory.StockFilter{
		ProductID:   filter.ProductID,
		WarehouseID: filter.WarehouseID,
		Category:    filter.Category,
	})
	if err != nil {
		return nil, err
	}
	return ToStockViewResponses(inventory.FilterByStatus(views, status)), nil
}

// Statistics returns stock totals, served from cache when possible
func (s *InventoryService) Statistics(ctx context.Context) (*StatisticsResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("Failed to read statistics cache", zap.Error(err))
		} else if cached != nil {
			resp := ToStatisticsResponse(*cached)
			return &resp, nil
		}
	}

	views, err := s.stockRepo.FindViews(ctx, inventory.StockFilter{})
	if err != nil {
		return nil, err
	}
	stats := inventory.ComputeStatistics(views)

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn("Failed to write statistics cache", zap.Error(err))
		}
	}

	resp := ToStatisticsResponse(stats)
	return &resp, nil
}

// Summary returns per-product totals across warehouses
func (s *InventoryService) Summary(ctx context.Context) ([]ProductSummaryResponse, error) {
	views, err := s.stockRepo.FindViews(ctx, inventory.StockFilter{})
	if err != nil {
		return nil, err
	}

	summaries := inventory.SummarizeByProduct(views)
	out := make([]ProductSummaryResponse, len(summaries))
	for i, sm := range summaries {
		out[i] = ProductSummaryResponse{
			ProductID:      sm.ProductID,
			ProductName:    sm.ProductName,
			SKU:            sm.SKU,
			Category:       sm.Category,
			UnitPrice:      sm.UnitPrice,
			Unit:           sm.Unit,
			ReorderLevel:   sm.ReorderLevel,
			TotalQuantity:  sm.TotalQuantity,
			TotalReserved:  sm.TotalReserved,
			TotalAvailable: sm.TotalAvailable,
			TotalValue:     sm.TotalValue,
			StockStatus:    sm.Status.String(),
			WarehouseCount: sm.WarehouseCount,
		}
	}
	return out, nil
}

// Alerts returns low and out-of-stock entries, out-of-stock first
func (s *InventoryService) Alerts(ctx context.Context) ([]AlertResponse, error) {
	views, err := s.stockRepo.FindViews(ctx, inventory.StockFilter{})
	if err != nil {
		return nil, err
	}

	alerts := inventory.BuildAlerts(views)
	out := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = AlertResponse{
			StockViewResponse: ToStockViewResponse(a.StockView),
			AlertType:         a.AlertType.String(),
		}
	}
	return out, nil
}

// Movements returns the stock movement journal, newest first
func (s *InventoryService) Movements(ctx context.Context, filter MovementListFilter) ([]MovementResponse, error) {
	movementType := inventory.MovementType(filter.MovementType)
	if movementType != "" && !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown movement type: "+filter.MovementType)
	}

	rows, err := s.movementRepo.FindAll(ctx, inventory.MovementFilter{
		ProductID:   filter.ProductID,
		WarehouseID: filter.WarehouseID,
		Type:        movementType,
		From:        filter.StartDate,
		To:          filter.EndDate,
		Limit:       filter.Limit,
	}.Normalize())
	if err != nil {
		return nil, err
	}

	out := make([]MovementResponse, len(rows))
	for i, m := range rows {
		out[i] = ToMovementResponse(m)
	}
	return out, nil
}

// ByProduct returns a product's stock in every active warehouse
func (s *InventoryService) ByProduct(ctx context.Context, productID int64) ([]StockViewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	views, err := s.stockRepo.FindViews(ctx, inventory.StockFilter{ProductID: productID})
	if err != nil {
		return nil, err
	}
	return ToStockViewResponses(views), nil
}

// ByWarehouse returns the stock of every active product in a warehouse
func (s *InventoryService) ByWarehouse(ctx context.Context, warehouseID int64) ([]StockViewResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return nil, err
	}
	views, err := s.stockRepo.FindViews(ctx, inventory.StockFilter{WarehouseID: warehouseID})
	if err != nil {
		return nil, err
	}
	return ToStockViewResponses(views), nil
}

// InvalidateStatistics drops cached statistics after a change made elsewhere
func (s *InventoryService) InvalidateStatistics(ctx context.Context) {
	s.invalidateStatistics(ctx)
}

func (s *InventoryService) invalidateStatistics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Failed to invalidate statistics cache", zap.Error(err))
	}
}

// RequireActive checks that a product and warehouse exist and are active
func RequireActive(ctx context.Context, repos TransactionalRepositories, productID, warehouseID int64) error {
	product, err := repos.ProductRepo().FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.Active {
		return shared.NewDomainError("INVALID_STATE", "Product "+product.SKU+" is inactive")
	}
	wh, err := repos.WarehouseRepo().FindByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if !wh.Active {
		return shared.NewDomainError("INVALID_STATE", "Warehouse "+wh.Name+" is inactive")
	}
	return nil
}
