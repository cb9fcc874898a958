package controllers

import (
	"github.com/getartha/ledgerhub/db/models"
	"github.com/getartha/ledgerhub/lib/responses"
	"github.com/getartha/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// TaxCodeController : Tax code controller struct
type TaxCodeController struct {
	svc *service.LedgerhubService
}

func NewTaxCodeController(svc *service.LedgerhubService) *TaxCodeController {
	return &TaxCodeController{svc: svc}
}

type CreateTaxCodeRequestBody struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	RateBps     int64  `json:"rate_bps" validate:"gte=0,lte=10000"`
	CGSTRateBps int64  `json:"cgst_rate_bps" validate:"gte=0"`
	SGSTRateBps int64  `json:"sgst_rate_bps" validate:"gte=0"`
	IGSTRateBps int64  `json:"igst_rate_bps" validate:"gte=0"`
	CessRateBps int64  `json:"cess_rate_bps" validate:"gte=0"`
}

// CreateTaxCode godoc
// @Summary      Create a tax code
// @Description  Adds a GST tax code. Rates are basis points (1800 = 18%).
// @Accept       json
// @Produce      json
// @Tags         TaxCode
// @Param        taxcode  body      CreateTaxCodeRequestBody  true  "Create Tax Code"
// @Success      200      {object}  responses.SuccessResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Router       /api/tax-codes [post]
func (controller *TaxCodeController) CreateTaxCode(c echo.Context) error {
	var body CreateTaxCodeRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create tax code request body: %v", err)
		return responses.ValidationError("failed to parse request body")
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	taxCode := &models.TaxCode{
		Code:        body.Code,
		Name:        body.Name,
		RateBps:     body.RateBps,
		CGSTRateBps: body.CGSTRateBps,
		SGSTRateBps: body.SGSTRateBps,
		IGSTRateBps: body.IGSTRateBps,
		CessRateBps: body.CessRateBps,
	}
	if err := controller.svc.CreateTaxCode(c.Request().Context(), taxCode); err != nil {
		return err
	}
	return responses.Ok(c, taxCode)
}

// ListTaxCodes godoc
// @Summary      List tax codes
// @Produce      json
// @Tags         TaxCode
// @Param        active  query     bool  false  "only active tax codes"
// @Success      200     {object}  responses.SuccessResponse
// @Router       /api/tax-codes [get]
func (controller *TaxCodeController) ListTaxCodes(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	taxCodes, err := controller.svc.ListTaxCodes(c.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	return responses.Ok(c, taxCodes)
}
