package api

import (
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"net/http"
)

func (h *handlers) getStatus(c echo.Context) error {
	data := reprint.This(h.Engine.Status())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
