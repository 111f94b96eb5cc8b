package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/order"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StatisticsInvalidator drops cached stock statistics
type StatisticsInvalidator interface {
	InvalidateStatistics(ctx context.Context)
}

// OrderService handles the receipt, delivery and transfer lifecycle
type OrderService struct {
	txScope   appinv.TransactionScope
	orderRepo order.Repository
	stats     StatisticsInvalidator
	metrics   appinv.Metrics
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(txScope appinv.TransactionScope, orderRepo order.Repository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		txScope:   txScope,
		orderRepo: orderRepo,
		metrics:   appinv.NoopMetrics(),
		logger:    logger,
	}
}

// SetStatisticsInvalidator sets the hook called after stock changes
func (s *OrderService) SetStatisticsInvalidator(stats StatisticsInvalidator) {
	s.stats = stats
}

// SetMetrics sets the metrics sink
func (s *OrderService) SetMetrics(metrics appinv.Metrics) {
	if metrics == nil {
		metrics = appinv.NoopMetrics()
	}
	s.metrics = metrics
}

// Create creates an order of the given kind in draft status
func (s *OrderService) Create(ctx context.Context, kind order.Kind, req CreateOrderRequest) (*OrderResponse, error) {
	scheduleDate, err := parseScheduleDate(req.ScheduleDate)
	if err != nil {
		return nil, err
	}

	var o *order.Order
	switch kind {
	case order.KindReceipt:
		o, err = order.NewOrder(kind, req.Vendor, req.Responsible, scheduleDate)
	case order.KindDelivery:
		o, err = order.NewOrder(kind, req.Customer, req.Responsible, scheduleDate)
	case order.KindTransfer:
		o, err = order.NewTransfer(req.SourceWarehouseID, req.DestinationWarehouseID, req.Responsible, scheduleDate)
	default:
		err = shared.NewDomainError("INVALID_INPUT", "Unknown order kind: "+kind.String())
	}
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if o.Kind == order.KindTransfer {
			for _, id := range []int64{o.SourceWarehouseID, o.DestinationWarehouseID} {
				wh, err := repos.WarehouseRepo().FindByID(ctx, id)
				if err != nil {
					return err
				}
				if !wh.Active {
					return shared.NewDomainError("INVALID_STATE", "Warehouse "+wh.Name+" is inactive")
				}
			}
		}
		return repos.OrderRepo().Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.Int64("order_id", o.ID),
		zap.String("reference", o.Reference()),
		zap.String("kind", o.Kind.String()),
	)
	resp := ToOrderResponse(o)
	return &resp, nil
}

// AddLineItem appends a line to a draft or ready order
func (s *OrderService) AddLineItem(ctx context.Context, kind order.Kind, orderID int64, req AddLineItemRequest) (*OrderResponse, error) {
	var o *order.Order
	err := s.txScope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		var err error
		o, err = lockOrder(ctx, repos, kind, orderID)
		if err != nil {
			return err
		}

		line, err := o.AddLine(req.ProductID, req.WarehouseID, req.Quantity)
		if err != nil {
			return err
		}
		if err := appinv.RequireActive(ctx, repos, line.ProductID, line.WarehouseID); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Validate advances an order one step. The step into done applies the order's
// stock changes in the same transaction; validating a done order changes nothing.
func (s *OrderService) Validate(ctx context.Context, kind order.Kind, orderID int64) (*ValidateResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "validate")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, orderID,
		telemetry.SpanAttrOrderKind, kind.String(),
	)

	var (
		o        *order.Order
		changed  bool
		postings []inventory.Posting
	)
	err := s.txScope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		var err error
		o, err = lockOrder(ctx, repos, kind, orderID)
		if err != nil {
			return err
		}

		ledger := appinv.NewLedger(repos)
		changed, err = o.Advance(func(reference string, p []inventory.Posting) error {
			postings = p
			return ledger.Post(ctx, reference, p)
		})
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return repos.OrderRepo().Save(ctx, o)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logValidateFailure(kind, orderID, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrReference, o.Reference(),
		telemetry.SpanAttrOrderStatus, o.Status.String(),
		telemetry.SpanAttrLineCount, len(o.Lines),
	)

	if changed {
		s.metrics.RecordOrderAdvanced(ctx, o.Kind.String(), o.Status.String())
		s.logger.Info("Order validated",
			zap.Int64("order_id", o.ID),
			zap.String("reference", o.Reference()),
			zap.String("status", o.Status.String()),
		)
	}
	if changed && o.Status == order.StatusDone {
		for _, p := range postings {
			qty := p.Quantity
			if qty < 0 {
				qty = -qty
			}
			s.metrics.RecordUnitsMoved(ctx, string(p.Type), qty)
		}
		if s.stats != nil {
			s.stats.InvalidateStatistics(ctx)
		}
	}

	return &ValidateResponse{
		ID:        o.ID,
		Reference: o.Reference(),
		Status:    o.Status.String(),
		Changed:   changed,
	}, nil
}

// Get retrieves an order with its lines
func (s *OrderService) Get(ctx context.Context, kind order.Kind, orderID int64) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Kind != kind {
		return nil, notFound(kind, orderID)
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// List retrieves orders of one kind with pagination
func (s *OrderService) List(ctx context.Context, kind order.Kind, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	status := order.Status(filter.Status)
	if status != "" && !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown order status: "+filter.Status)
	}

	domainFilter := order.Filter{
		Filter: shared.DefaultFilter(),
		Kind:   kind,
		Status: status,
	}
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderResponse(&orders[i])
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

func (s *OrderService) logValidateFailure(kind order.Kind, orderID int64, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		s.logger.Warn("Order validation rejected",
			zap.String("kind", kind.String()),
			zap.Int64("order_id", orderID),
			zap.String("code", domainErr.Code),
			zap.String("message", domainErr.Message),
		)
		return
	}
	s.logger.Error("Order validation failed",
		zap.String("kind", kind.String()),
		zap.Int64("order_id", orderID),
		zap.Error(err),
	)
}

// lockOrder loads an order for update and checks it is of the expected kind
func lockOrder(ctx context.Context, repos appinv.TransactionalRepositories, kind order.Kind, orderID int64) (*order.Order, error) {
	o, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Kind != kind {
		return nil, notFound(kind, orderID)
	}
	return o, nil
}

func notFound(kind order.Kind, orderID int64) error {
	return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("%s %d not found", kind, orderID))
}

func parseScheduleDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(ScheduleDateLayout, s)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Schedule date must use YYYY-MM-DD")
	}
	return &t, nil
}
