package api

import (
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"net/http"
	"strconv"
)

func (h *handlers) registerSensorEndpoints(rest *echo.Echo) {
	group := rest.Group("/sensor")

	group.GET("/", h.getSensors)
	group.GET("/:"+urlParamId+"/", h.getSensor)
}

func (h *handlers) getSensors(c echo.Context) error {
	data := reprint.This(h.Engine.Status().Sensors)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

// getSensor accepts the index or the name of a sensor
func (h *handlers) getSensor(c echo.Context) error {
	id := c.Param(urlParamId)

	for _, sensor := range h.Engine.Status().Sensors {
		if sensor.Name == id || strconv.Itoa(sensor.Index) == id {
			return c.JSONPretty(http.StatusOK, sensor, indentationChar)
		}
	}
	return returnNotFound(c, id)
}
