package controllers

import (
	"strconv"
	"time"

	"github.com/getartha/ledgerhub/lib/responses"
	"github.com/getartha/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// BillController : Vendor bill controller struct
type BillController struct {
	svc *service.LedgerhubService
}

func NewBillController(svc *service.LedgerhubService) *BillController {
	return &BillController{svc: svc}
}

// CreateBill godoc
// @Summary      Create a draft bill
// @Description  Creates a vendor bill in draft status. Line taxes and totals are computed server-side.
// @Accept       json
// @Produce      json
// @Tags         Bill
// @Param        bill  body      service.BillParams  true  "Create Bill"
// @Success      200   {object}  responses.SuccessResponse
// @Failure      400   {object}  responses.ErrorResponse
// @Router       /api/bills [post]
func (controller *BillController) CreateBill(c echo.Context) error {
	var body service.BillParams
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create bill request body: %v", err)
		return responses.ValidationError("failed to parse request body")
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	bill, err := controller.svc.CreateBill(c.Request().Context(), &body)
	if err != nil {
		return err
	}
	return responses.Ok(c, bill)
}

// UpdateBill godoc
// @Summary      Update a draft bill
// @Description  Replaces a draft bill's lines, memo and dates. Posted bills are immutable.
// @Accept       json
// @Produce      json
// @Tags         Bill
// @Param        id    path      int                 true  "Bill ID"
// @Param        bill  body      service.BillParams  true  "Update Bill"
// @Success      200   {object}  responses.SuccessResponse
// @Failure      404   {object}  responses.ErrorResponse
// @Failure      409   {object}  responses.ErrorResponse
// @Router       /api/bills/{id} [put]
func (controller *BillController) UpdateBill(c echo.Context) error {
	billId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return responses.ValidationError("invalid bill id")
	}

	var body service.BillParams
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load update bill request body: %v", err)
		return responses.ValidationError("failed to parse request body")
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	bill, err := controller.svc.UpdateBill(c.Request().Context(), billId, &body)
	if err != nil {
		return err
	}
	return responses.Ok(c, bill)
}

// GetBill godoc
// @Summary      Retrieve a bill
// @Produce      json
// @Tags         Bill
// @Param        id   path      int  true  "Bill ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/bills/{id} [get]
func (controller *BillController) GetBill(c echo.Context) error {
	billId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return responses.ValidationError("invalid bill id")
	}
	bill, err := controller.svc.FindBill(c.Request().Context(), billId)
	if err != nil {
		return err
	}
	return responses.Ok(c, bill)
}

// ListBills godoc
// @Summary      List bills
// @Description  Returns bills, newest first, filtered by status, vendor and date range
// @Produce      json
// @Tags         Bill
// @Param        status     query     string  false  "bill status"
// @Param        vendor_id  query     int     false  "vendor id"
// @Param        from       query     string  false  "bill_date lower bound (RFC 3339)"
// @Param        to         query     string  false  "bill_date upper bound (RFC 3339)"
// @Param        limit      query     int     false  "page size (max 100)"
// @Param        offset     query     int     false  "page offset"
// @Success      200        {object}  responses.SuccessResponse
// @Router       /api/bills [get]
func (controller *BillController) ListBills(c echo.Context) error {
	filter := service.BillFilter{Status: c.QueryParam("status")}
	if v := c.QueryParam("vendor_id"); v != "" {
		vendorId, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return responses.ValidationError("invalid vendor_id")
		}
		filter.VendorID = vendorId
	}
	if v := c.QueryParam("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return responses.ValidationError("invalid from timestamp")
		}
		filter.From = from
	}
	if v := c.QueryParam("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return responses.ValidationError("invalid to timestamp")
		}
		filter.To = to
	}
	if v := c.QueryParam("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	bills, err := controller.svc.BillsFor(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return responses.Ok(c, bills)
}

// PostBill godoc
// @Summary      Post a bill
// @Description  Runs the draft -> posted transition and writes the balanced journal entry
// @Produce      json
// @Tags         Bill
// @Param        id   path      int  true  "Bill ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /api/bills/{id}/post [post]
func (controller *BillController) PostBill(c echo.Context) error {
	billId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return responses.ValidationError("invalid bill id")
	}
	bill, err := controller.svc.PostBill(c.Request().Context(), billId)
	if err != nil {
		return err
	}
	return responses.Ok(c, bill)
}
