package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Marketplace-api/internal/application/admin"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ports"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/internal/domain/resource"
)

// OrderAdmin seguimiento de pedidos.
type OrderAdmin = admin.Resource[entity.Order, dto.OrderResponse]

// NewOrderAdmin construye el recurso orders. El cambio de estado y su entrada de
// historial se escriben en la misma transacción.
func NewOrderAdmin(repo repository.OrderRepository, tx repository.TxRunner, events ports.EventPublisher, maxLimit int) *OrderAdmin {
	return admin.New(admin.Config[entity.Order, dto.OrderResponse]{
		Schema:     resource.Orders,
		Store:      repo,
		ToResponse: toOrderResponse,
		ToDetail: func(ctx context.Context, o *entity.Order) (dto.OrderResponse, error) {
			history, err := repo.ListStatusChanges(ctx, o.ID)
			if err != nil {
				return dto.OrderResponse{}, fmt.Errorf("historial del pedido: %w", err)
			}
			return toOrderDetail(o, history), nil
		},
		StatusOf: func(o *entity.Order) string { return string(o.Status) },
		UpdateStatus: func(ctx context.Context, o *entity.Order, to, actorID string) error {
			next := entity.OrderStatus(to)
			return tx.Run(ctx, func(repos repository.TxRepos) error {
				if err := repos.Orders.UpdateStatus(ctx, o.ID, o.Status, next); err != nil {
					return err
				}
				return repos.Orders.AddStatusChange(ctx, &entity.OrderStatusChange{
					ID:        uuid.New().String(),
					OrderID:   o.ID,
					From:      o.Status,
					To:        next,
					ChangedBy: actorID,
					CreatedAt: time.Now(),
				})
			})
		},
		StatusTopic: ports.TopicOrderStatusChanged,
		Events:      events,
		MaxLimit:    maxLimit,
	})
}

// OrderReceiptUseCase genera el comprobante PDF de un pedido.
type OrderReceiptUseCase struct {
	repo     repository.OrderRepository
	settings *SettingUseCase
	pdf      ports.OrderPDFGenerator
}

// NewOrderReceiptUseCase construye el caso de uso.
func NewOrderReceiptUseCase(repo repository.OrderRepository, settings *SettingUseCase, pdf ports.OrderPDFGenerator) *OrderReceiptUseCase {
	return &OrderReceiptUseCase{repo: repo, settings: settings, pdf: pdf}
}

// Generate devuelve los bytes del PDF o ErrNotFound.
func (uc *OrderReceiptUseCase) Generate(ctx context.Context, orderID string) ([]byte, error) {
	o, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if o == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
	}
	return uc.pdf.GenerateOrderPDF(ctx, o, uc.settings.Value(ctx, entity.SettingSiteTitle))
}
