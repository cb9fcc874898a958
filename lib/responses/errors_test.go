package responses

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestServiceErrorsSkipSentry(t *testing.T) {
	assert.False(t, isErrAllowedForSentry(NotFoundError))
	assert.False(t, isErrAllowedForSentry(AlreadyPostedError))
	assert.False(t, isErrAllowedForSentry(OverpaymentError))
	assert.False(t, isErrAllowedForSentry(ValidationError("bad input")))
	assert.True(t, isErrAllowedForSentry(GeneralServerError))
}

func TestWrappedServiceErrorsSkipSentry(t *testing.T) {
	err := fmt.Errorf("recording payment: %w", NotPostedError)
	assert.False(t, isErrAllowedForSentry(err))
}

func TestEchoErrorsSkipSentryBelow500(t *testing.T) {
	assert.False(t, isErrAllowedForSentry(echo.NewHTTPError(http.StatusBadRequest, "bad request")))
	assert.True(t, isErrAllowedForSentry(echo.NewHTTPError(http.StatusInternalServerError, "boom")))
}

func TestUnknownErrorsGoToSentry(t *testing.T) {
	assert.True(t, isErrAllowedForSentry(errors.New("driver: bad connection")))
}
