package usecase

import (
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		HasPassword:  u.HasPassword(),
		GoogleLinked: u.GoogleID != nil,
		RoleSelected: u.RoleSelected,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ToUserResponse expone el mapeo para el caso de uso de auth.
func ToUserResponse(u *entity.User) dto.UserResponse { return toUserResponse(u) }

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		SellerName:  p.SellerName,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:         o.ID,
		BuyerID:    o.BuyerID,
		BuyerName:  o.BuyerName,
		SellerID:   o.SellerID,
		SellerName: o.SellerName,
		Status:     string(o.Status),
		Total:      o.Total,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func toOrderDetail(o *entity.Order, history []*entity.OrderStatusChange) dto.OrderResponse {
	out := toOrderResponse(o)
	consistent := o.TotalConsistent()
	out.TotalConsistent = &consistent
	out.Items = make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal(),
		})
	}
	for _, h := range history {
		out.History = append(out.History, dto.OrderStatusResponse{
			From:      string(h.From),
			To:        string(h.To),
			ChangedBy: h.ChangedBy,
			CreatedAt: h.CreatedAt,
		})
	}
	return out
}

func toReviewResponse(r *entity.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		UserID:      r.UserID,
		UserName:    r.UserName,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
	}
}

func toTicketResponse(t *entity.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		UserName:  t.UserName,
		Subject:   t.Subject,
		Category:  t.Category,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTicketDetail(t *entity.Ticket) dto.TicketResponse {
	out := toTicketResponse(t)
	out.Responses = make([]dto.TicketMessageResponse, 0, len(t.Responses))
	for _, r := range t.Responses {
		out.Responses = append(out.Responses, dto.TicketMessageResponse{
			ID:         r.ID,
			AuthorID:   r.AuthorID,
			AuthorName: r.AuthorName,
			Message:    r.Message,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	targets := n.TargetUserIDs
	if targets == nil {
		targets = []string{}
	}
	return dto.NotificationResponse{
		ID:            n.ID,
		Title:         n.Title,
		Message:       n.Message,
		IsRead:        n.IsRead,
		IsImportant:   n.IsImportant,
		TargetAll:     n.TargetAll,
		TargetUserIDs: targets,
		CreatedAt:     n.CreatedAt,
	}
}

func toSettingResponse(s *entity.Setting) dto.SettingResponse {
	return dto.SettingResponse{Key: s.Key, Value: s.Value, UpdatedAt: s.UpdatedAt}
}
