package controllers

import (
	"strconv"

	"github.com/getartha/ledgerhub/lib/responses"
	"github.com/getartha/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

// JournalController : Journal entry controller struct
type JournalController struct {
	svc *service.LedgerhubService
}

func NewJournalController(svc *service.LedgerhubService) *JournalController {
	return &JournalController{svc: svc}
}

// GetJournalEntry godoc
// @Summary      Retrieve a journal entry
// @Description  Returns a journal entry with its lines and accounts
// @Produce      json
// @Tags         Journal
// @Param        id   path      int  true  "Journal Entry ID"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/journal-entries/{id} [get]
func (controller *JournalController) GetJournalEntry(c echo.Context) error {
	entryId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return responses.ValidationError("invalid journal entry id")
	}
	entry, err := controller.svc.FindJournalEntry(c.Request().Context(), entryId)
	if err != nil {
		return err
	}
	return responses.Ok(c, entry)
}

// ListJournalEntries godoc
// @Summary      Look up journal entries by source
// @Produce      json
// @Tags         Journal
// @Param        source_type  query     string  true  "bill or payment"
// @Param        source_id    query     int     true  "source record id"
// @Success      200          {object}  responses.SuccessResponse
// @Router       /api/journal-entries [get]
func (controller *JournalController) ListJournalEntries(c echo.Context) error {
	sourceType := c.QueryParam("source_type")
	if sourceType == "" {
		return responses.ValidationError("source_type is required")
	}
	sourceId, err := strconv.ParseInt(c.QueryParam("source_id"), 10, 64)
	if err != nil {
		return responses.ValidationError("invalid source_id")
	}
	entries, err := controller.svc.JournalEntriesForSource(c.Request().Context(), sourceType, sourceId)
	if err != nil {
		return err
	}
	return responses.Ok(c, entries)
}
