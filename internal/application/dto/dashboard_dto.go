package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/admin/dashboard/summary.
type DashboardSummaryDTO struct {
	UsersByRole           map[string]int  `json:"users_by_role"`
	TotalUsers            int             `json:"total_users"`
	PendingProducts       int             `json:"pending_products"`
	OrdersByStatus        map[string]int  `json:"orders_by_status"`
	OpenTickets           int             `json:"open_tickets"` // open + pending
	UnreadNotifications   int             `json:"unread_notifications"`
	MonthDeliveredRevenue decimal.Decimal `json:"month_delivered_revenue"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}
