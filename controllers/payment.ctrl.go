package controllers

import (
	"strconv"

	"github.com/getartha/ledgerhub/lib/responses"
	"github.com/getartha/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// PaymentController : Bill payment controller struct
type PaymentController struct {
	svc *service.LedgerhubService
}

func NewPaymentController(svc *service.LedgerhubService) *PaymentController {
	return &PaymentController{svc: svc}
}

// RecordPayment godoc
// @Summary      Record a bill payment
// @Description  Records a payment (optionally with TDS withheld) against a posted bill and posts the matching journal entry
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        payment  body      service.PaymentParams  true  "Record Payment"
// @Success      200      {object}  responses.SuccessResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /api/bill-payments [post]
func (controller *PaymentController) RecordPayment(c echo.Context) error {
	var body service.PaymentParams
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load record payment request body: %v", err)
		return responses.ValidationError("failed to parse request body")
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	payment, err := controller.svc.RecordPayment(c.Request().Context(), &body)
	if err != nil {
		return err
	}
	return responses.Ok(c, payment)
}

// ListBillPayments godoc
// @Summary      List payments for a bill
// @Produce      json
// @Tags         Payment
// @Param        id   path      int  true  "Bill ID"
// @Success      200  {object}  responses.SuccessResponse
// @Router       /api/bills/{id}/payments [get]
func (controller *PaymentController) ListBillPayments(c echo.Context) error {
	billId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return responses.ValidationError("invalid bill id")
	}
	payments, err := controller.svc.PaymentsForBill(c.Request().Context(), billId)
	if err != nil {
		return err
	}
	return responses.Ok(c, payments)
}
