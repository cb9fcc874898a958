package controllers

import (
	"strconv"

	"github.com/getartha/ledgerhub/db/models"
	"github.com/getartha/ledgerhub/lib/responses"
	"github.com/getartha/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// AccountController : Chart of accounts controller struct
type AccountController struct {
	svc *service.LedgerhubService
}

func NewAccountController(svc *service.LedgerhubService) *AccountController {
	return &AccountController{svc: svc}
}

type CreateAccountRequestBody struct {
	Code          string `json:"code" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Type          string `json:"type" validate:"required,oneof=asset liability equity revenue expense"`
	NormalBalance string `json:"normal_balance" validate:"required,oneof=debit credit"`
	SystemTag     string `json:"system_tag" validate:"omitempty,oneof=accounts_payable bank cgst_input sgst_input igst_input cess_input tds_payable"`
}

// CreateAccount godoc
// @Summary      Create an account
// @Description  Adds an account to the chart of accounts
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        account  body      CreateAccountRequestBody  true  "Create Account"
// @Success      200      {object}  responses.SuccessResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /api/accounts [post]
func (controller *AccountController) CreateAccount(c echo.Context) error {
	var body CreateAccountRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create account request body: %v", err)
		return responses.ValidationError("failed to parse request body")
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	account := &models.Account{
		Code:          body.Code,
		Name:          body.Name,
		Type:          body.Type,
		NormalBalance: body.NormalBalance,
		SystemTag:     body.SystemTag,
	}
	if err := controller.svc.CreateAccount(c.Request().Context(), account); err != nil {
		return err
	}
	return responses.Ok(c, account)
}

// ListAccounts godoc
// @Summary      List accounts
// @Description  Returns the chart of accounts
// @Produce      json
// @Tags         Account
// @Param        active  query     bool  false  "only active accounts"
// @Success      200     {object}  responses.SuccessResponse
// @Router       /api/accounts [get]
func (controller *AccountController) ListAccounts(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	accounts, err := controller.svc.ListAccounts(c.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	return responses.Ok(c, accounts)
}

// DeactivateAccount godoc
// @Summary      Deactivate an account
// @Description  Marks an account inactive. Accounts are never deleted.
// @Produce      json
// @Tags         Account
// @Param        id   path      int  true  "Account ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/accounts/{id}/deactivate [post]
func (controller *AccountController) DeactivateAccount(c echo.Context) error {
	accountId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return responses.ValidationError("invalid account id")
	}
	if err := controller.svc.DeactivateAccount(c.Request().Context(), accountId); err != nil {
		return err
	}
	return responses.Ok(c, nil)
}

// GetLedger godoc
// @Summary      Account ledger
// @Description  Returns the posted journal lines and running totals for an account
// @Produce      json
// @Tags         Account
// @Param        id   path      int  true  "Account ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/accounts/{id}/ledger [get]
func (controller *AccountController) GetLedger(c echo.Context) error {
	accountId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return responses.ValidationError("invalid account id")
	}
	ledger, err := controller.svc.LedgerForAccount(c.Request().Context(), accountId)
	if err != nil {
		return err
	}
	return responses.Ok(c, ledger)
}
