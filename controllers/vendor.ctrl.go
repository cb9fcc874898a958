package controllers

import (
	"strconv"

	"github.com/getartha/ledgerhub/db/models"
	"github.com/getartha/ledgerhub/lib/responses"
	"github.com/getartha/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// VendorController : Vendor master controller struct
type VendorController struct {
	svc *service.LedgerhubService
}

func NewVendorController(svc *service.LedgerhubService) *VendorController {
	return &VendorController{svc: svc}
}

type CreateVendorRequestBody struct {
	Name      string `json:"name" validate:"required"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"state_code"`
}

// CreateVendor godoc
// @Summary      Create a vendor
// @Accept       json
// @Produce      json
// @Tags         Vendor
// @Param        vendor  body      CreateVendorRequestBody  true  "Create Vendor"
// @Success      200     {object}  responses.SuccessResponse
// @Failure      400     {object}  responses.ErrorResponse
// @Router       /api/vendors [post]
func (controller *VendorController) CreateVendor(c echo.Context) error {
	var body CreateVendorRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create vendor request body: %v", err)
		return responses.ValidationError("failed to parse request body")
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	vendor := &models.Vendor{
		Name:      body.Name,
		GSTIN:     body.GSTIN,
		StateCode: body.StateCode,
	}
	if err := controller.svc.CreateVendor(c.Request().Context(), vendor); err != nil {
		return err
	}
	return responses.Ok(c, vendor)
}

// ListVendors godoc
// @Summary      List vendors
// @Produce      json
// @Tags         Vendor
// @Param        active  query     bool  false  "only active vendors"
// @Success      200     {object}  responses.SuccessResponse
// @Router       /api/vendors [get]
func (controller *VendorController) ListVendors(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	vendors, err := controller.svc.ListVendors(c.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	return responses.Ok(c, vendors)
}

// GetVendor godoc
// @Summary      Retrieve a vendor
// @Produce      json
// @Tags         Vendor
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/vendors/{id} [get]
func (controller *VendorController) GetVendor(c echo.Context) error {
	vendorId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return responses.ValidationError("invalid vendor id")
	}
	vendor, err := controller.svc.FindVendor(c.Request().Context(), vendorId)
	if err != nil {
		return err
	}
	return responses.Ok(c, vendor)
}

// DeactivateVendor godoc
// @Summary      Deactivate a vendor
// @Produce      json
// @Tags         Vendor
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/vendors/{id}/deactivate [post]
func (controller *VendorController) DeactivateVendor(c echo.Context) error {
	vendorId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return responses.ValidationError("invalid vendor id")
	}
	if err := controller.svc.DeactivateVendor(c.Request().Context(), vendorId); err != nil {
		return err
	}
	return responses.Ok(c, nil)
}
