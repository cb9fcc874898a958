package responses

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the wire shape for every failed request:
// { "success": false, "error": { "code": "...", "message": "..." } }
// It doubles as the error value the service layer returns, so controllers
// can bubble it up to the HTTPErrorHandler untouched.
type ErrorResponse struct {
	Success        bool      `json:"success"`
	Err            ErrorBody `json:"error"`
	HttpStatusCode int       `json:"-"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Err.Code + ": " + e.Err.Message
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func Ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, &SuccessResponse{Success: true, Data: data})
}

var GeneralServerError = &ErrorResponse{
	Err:            ErrorBody{Code: "INTERNAL_ERROR", Message: "Something went wrong. Please try again later"},
	HttpStatusCode: http.StatusInternalServerError,
}

var NotFoundError = &ErrorResponse{
	Err:            ErrorBody{Code: "NOT_FOUND", Message: "record not found"},
	HttpStatusCode: http.StatusNotFound,
}

var AlreadyPostedError = &ErrorResponse{
	Err:            ErrorBody{Code: "ALREADY_POSTED", Message: "bill is not in draft status"},
	HttpStatusCode: http.StatusConflict,
}

var NotPostedError = &ErrorResponse{
	Err:            ErrorBody{Code: "NOT_POSTED", Message: "bill has not been posted yet"},
	HttpStatusCode: http.StatusBadRequest,
}

var OverpaymentError = &ErrorResponse{
	Err:            ErrorBody{Code: "OVERPAYMENT", Message: "payment amount exceeds the bill's balance due"},
	HttpStatusCode: http.StatusBadRequest,
}

var NoAPAccountError = &ErrorResponse{
	Err:            ErrorBody{Code: "NO_AP_ACCOUNT", Message: "no accounts payable account is configured"},
	HttpStatusCode: http.StatusBadRequest,
}

var NoTaxAccountError = &ErrorResponse{
	Err:            ErrorBody{Code: "NO_TAX_ACCOUNT", Message: "no tax input account is configured for this tax component"},
	HttpStatusCode: http.StatusBadRequest,
}

var NoBankAccountError = &ErrorResponse{
	Err:            ErrorBody{Code: "NO_BANK_ACCOUNT", Message: "no bank account is configured"},
	HttpStatusCode: http.StatusBadRequest,
}

var NoTDSAccountError = &ErrorResponse{
	Err:            ErrorBody{Code: "NO_TDS_ACCOUNT", Message: "no TDS payable account is configured"},
	HttpStatusCode: http.StatusBadRequest,
}

// ValidationError builds a 400 with a request-specific message.
func ValidationError(message string) *ErrorResponse {
	return &ErrorResponse{
		Err:            ErrorBody{Code: "VALIDATION_ERROR", Message: message},
		HttpStatusCode: http.StatusBadRequest,
	}
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var resp *ErrorResponse
	if errors.As(err, &resp) {
		c.JSON(resp.HttpStatusCode, resp)
		return
	}

	c.Logger().Error(err)
	if isErrAllowedForSentry(err) {
		if hub := sentryecho.GetHubFromContext(c); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetExtra("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
				hub.CaptureException(err)
			})
		}
	}

	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, &ErrorResponse{
			Err: ErrorBody{Code: "VALIDATION_ERROR", Message: fmt.Sprintf("%v", he.Message)},
		})
		return
	}
	// database and other unexpected failures: do not leak internals
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}

// client-side errors carry no signal for exception tracking
func isErrAllowedForSentry(err error) bool {
	var resp *ErrorResponse
	if errors.As(err, &resp) {
		return resp.HttpStatusCode >= http.StatusInternalServerError
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code >= http.StatusInternalServerError
	}
	return true
}
