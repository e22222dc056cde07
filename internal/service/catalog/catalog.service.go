package catalog

import (
	"errors"
	"net/http"

	"topup-store/internal/common/models"
	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/validation"
	catalogRepo "topup-store/internal/repository/catalog"

	"github.com/samber/lo"
)

func (s *Service) ListMenu(req *ListMenuRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid query",
			Error:   err,
		})
	}

	items, err := s.rp.Catalog.ListMenuItems(s.ctx, catalogRepo.MenuFilter{
		Category: req.Category,
		Search:   req.Search,
	})
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load menu",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: lo.Map(items, func(item models.MenuItem, _ int) MenuItemResponse { return toMenuItemResponse(item) }),
	})
}

func toMenuItemResponse(item models.MenuItem) MenuItemResponse {
	res := MenuItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Category:     item.Category,
		Description:  item.Description,
		ImageURL:     item.ImageURL,
		Price:        item.Price,
		Variations:   []types.Variation{},
		CustomFields: []types.CustomField{},
	}
	if err := item.Variations.Decode(&res.Variations); err != nil {
		logger.Warning.Printf("Menu item %s has unreadable variations: %v", item.ID, err)
	}
	if err := item.CustomFields.Decode(&res.CustomFields); err != nil {
		logger.Warning.Printf("Menu item %s has unreadable custom fields: %v", item.ID, err)
	}
	return res
}

func (s *Service) ListPaymentMethods() *types.Response {
	methods, err := s.rp.Catalog.ListPaymentMethods(s.ctx, true)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load payment methods",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: lo.Map(methods, func(m models.PaymentMethod, _ int) PaymentMethodResponse { return toPaymentMethodResponse(m) }),
	})
}

func toPaymentMethodResponse(m models.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:            m.ID,
		Name:          m.Name,
		AccountNumber: m.AccountNumber,
		AccountName:   m.AccountName,
		IconURL:       m.IconURL,
		HasQR:         m.QRURL != "",
	}
}

func (s *Service) CreatePaymentMethod(req *CreatePaymentMethodRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		})
	}

	method := &models.PaymentMethod{
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		IconURL:       req.IconURL,
		QRURL:         req.QRURL,
		Active:        req.Active == nil || *req.Active,
		SortOrder:     req.SortOrder,
	}
	if err := s.rp.Catalog.CreatePaymentMethod(s.ctx, method); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create payment method",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusCreated,
		Message: "Payment method created",
		Data:    toPaymentMethodResponse(*method),
	})
}

func paymentMethodError(err error) *types.Response {
	if errors.Is(err, types.ErrPaymentMethodNotFound) {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusNotFound,
			Message: "Payment method not found",
			Error:   err,
		})
	}
	return helper.ParseResponse(&types.Response{
		Code:    http.StatusInternalServerError,
		Message: "Failed to load payment method",
		Error:   err,
	})
}
