// Package analytics contiene los casos de uso de métricas del panel de administración.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del marketplace.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Consultas en paralelo:
//  1. usuarios por rol
//  2. productos por estado
//  3. pedidos por estado
//  4. tickets por estado
//  5. notificaciones sin leer
//  6. ingresos de pedidos entregados en el mes en curso
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	type countsResult struct {
		counts map[string]int
		err    error
	}
	type intResult struct {
		n   int
		err error
	}
	type revenueResult struct {
		revenue decimal.Decimal
		err     error
	}

	count := func(fn func(context.Context) (map[string]int, error)) <-chan countsResult {
		ch := make(chan countsResult, 1)
		go func() {
			c, err := fn(ctx)
			ch <- countsResult{c, err}
		}()
		return ch
	}

	usersCh := count(uc.analyticsRepo.CountUsersByRole)
	productsCh := count(uc.analyticsRepo.CountProductsByStatus)
	ordersCh := count(uc.analyticsRepo.CountOrdersByStatus)
	ticketsCh := count(uc.analyticsRepo.CountTicketsByStatus)

	unreadCh := make(chan intResult, 1)
	go func() {
		n, err := uc.analyticsRepo.CountUnreadNotifications(ctx)
		unreadCh <- intResult{n, err}
	}()
	revenueCh := make(chan revenueResult, 1)
	go func() {
		rev, err := uc.analyticsRepo.DeliveredRevenue(ctx, monthStart, monthEnd)
		revenueCh <- revenueResult{rev, err}
	}()

	users := <-usersCh
	products := <-productsCh
	orders := <-ordersCh
	tickets := <-ticketsCh
	unread := <-unreadCh
	revenue := <-revenueCh

	for name, err := range map[string]error{
		"usuarios":       users.err,
		"productos":      products.err,
		"pedidos":        orders.err,
		"tickets":        tickets.err,
		"notificaciones": unread.err,
		"ingresos":       revenue.err,
	} {
		if err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", name, err)
		}
	}

	total := 0
	for _, n := range users.counts {
		total += n
	}

	return &dto.DashboardSummaryDTO{
		UsersByRole:           users.counts,
		TotalUsers:            total,
		PendingProducts:       products.counts[string(entity.ProductPending)],
		OrdersByStatus:        orders.counts,
		OpenTickets:           tickets.counts[string(entity.TicketOpen)] + tickets.counts[string(entity.TicketPending)],
		UnreadNotifications:   unread.n,
		MonthDeliveredRevenue: revenue.revenue.Round(2),
		DateLabel:             monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
