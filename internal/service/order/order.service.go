package order

import (
	"errors"
	"net/http"

	"topup-store/internal/common/models"
	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/validation"
	orderRepo "topup-store/internal/repository/order"

	"github.com/samber/lo"
)

func (s *Service) GetOrder(id string) *types.Response {
	order, err := s.FetchOrder(s.ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrOrderNotFound) {
			return helper.ParseResponse(&types.Response{
				Code:    http.StatusNotFound,
				Message: "Order not found",
				Error:   err,
			})
		}
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to fetch order",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: OrderStatusView{
			ID:        order.ID,
			OrderCode: order.OrderCode,
			Status:    order.Status,
			Total:     order.TotalPrice,
			UpdatedAt: order.UpdatedAt,
		},
	})
}

func (s *Service) ListOrders(req *ListOrdersRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid query",
			Error:   err,
		})
	}

	orders, total, err := s.rp.Order.List(s.ctx, orderRepo.ListFilter{
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to list orders",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: ListOrdersResponse{
			Orders: lo.Map(orders, func(o models.Order, _ int) types.OrderSummary { return *s.toSummary(&o) }),
			Total:  total,
		},
	})
}

// UpdateStatus applies an admin status transition. Terminal statuses cannot change.
func (s *Service) UpdateStatus(id string, req *UpdateStatusRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		})
	}

	order, err := s.rp.Order.FindByID(s.ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrOrderNotFound) {
			return helper.ParseResponse(&types.Response{
				Code:    http.StatusNotFound,
				Message: "Order not found",
				Error:   err,
			})
		}
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to fetch order",
			Error:   err,
		})
	}

	if !order.Status.CanTransitionTo(req.Status) {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusConflict,
			Message: "Status change not allowed",
			Error:   types.ErrInvalidStatusTransition,
		})
	}

	if err := s.rp.Order.UpdateStatus(s.ctx, order.ID, order.Status, req.Status); err != nil {
		if errors.Is(err, types.ErrInvalidStatusTransition) {
			return helper.ParseResponse(&types.Response{
				Code:    http.StatusConflict,
				Message: "Order status changed concurrently",
				Error:   err,
			})
		}
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to update order status",
			Error:   err,
		})
	}
	logger.Info.Printf("Order %s moved %s -> %s", order.OrderCode, order.Status, req.Status)

	s.cacheStatus(order.ID, req.Status)
	order.Status = req.Status

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Order status updated",
		Data:    s.toSummary(order),
	})
}
