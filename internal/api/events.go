package api

import (
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"net/http"
	"strconv"
)

const (
	queryParamSource = "source"
	queryParamLimit  = "limit"

	sourceJournal = "journal"
)

func (h *handlers) registerEventEndpoints(rest *echo.Echo) {
	group := rest.Group("/event")

	group.GET("/", h.getEvents)
	group.DELETE("/", h.deleteEvents)
}

// getEvents returns the events buffered in memory, or the most recent
// events of the journal with ?source=journal
func (h *handlers) getEvents(c echo.Context) error {
	limit := 0
	if value := c.QueryParam(queryParamLimit); len(value) > 0 {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return returnBadRequest(c, "Invalid limit", strconv.ErrSyntax)
		}
		limit = parsed
	}

	if c.QueryParam(queryParamSource) == sourceJournal {
		if h.Persistence == nil {
			return returnNotFound(c, sourceJournal)
		}
		data, err := h.Persistence.LoadEvents(limit)
		if err != nil {
			return returnError(c, err)
		}
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}

	data := h.Events.List()
	if limit > 0 && len(data) > limit {
		data = data[len(data)-limit:]
	}
	return c.JSONPretty(http.StatusOK, reprint.This(data), indentationChar)
}

func (h *handlers) deleteEvents(c echo.Context) error {
	if h.Persistence == nil {
		return returnNotFound(c, sourceJournal)
	}
	if err := h.Persistence.DeleteEvents(); err != nil {
		return returnError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
