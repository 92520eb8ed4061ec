package api

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/ecthermal/internal/thermal"
	"net/http"
	"strconv"
)

const (
	urlParamIndex     = "index"
	queryParamVersion = "version"
)

type ConsoleSetRequest struct {
	// Values holds warn, high, halt, fan_off and fan_max, negative values are left unchanged
	Values thermal.ConsoleSetValues `json:"values"`
}

func (h *handlers) registerThermalEndpoints(rest *echo.Echo) {
	group := rest.Group("/thermal")

	group.GET("/", h.getThresholds)
	group.GET("/:"+urlParamIndex+"/", h.getThreshold)
	group.POST("/:"+urlParamIndex+"/", h.setThreshold)
	group.POST("/:"+urlParamIndex+"/console/", h.consoleSet)
}

func (h *handlers) getThresholds(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, h.Engine.Store().Snapshot(), indentationChar)
}

func (h *handlers) getThreshold(c echo.Context) error {
	index, version, err := thresholdParams(c)
	if err != nil {
		return returnError(c, err)
	}

	config, err := h.hostCommands.GetThreshold(version, thermal.GetThresholdRequest{SensorNum: index})
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, config, indentationChar)
}

// setThreshold replaces the whole configuration of a sensor
func (h *handlers) setThreshold(c echo.Context) error {
	index, version, err := thresholdParams(c)
	if err != nil {
		return returnError(c, err)
	}

	var config thermal.ThresholdConfig
	if err = c.Bind(&config); err != nil {
		return returnBadRequest(c, "Invalid request", err)
	}

	request := thermal.SetThresholdRequest{SensorNum: index, Config: config}
	if err = h.hostCommands.SetThreshold(version, request); err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, config, indentationChar)
}

func (h *handlers) consoleSet(c echo.Context) error {
	index, err := strconv.Atoi(c.Param(urlParamIndex))
	if err != nil {
		return returnError(c, fmt.Errorf("%w: %v", thermal.ErrInvalidParam, err))
	}

	request := ConsoleSetRequest{Values: thermal.NewConsoleSetValues()}
	if err = c.Bind(&request); err != nil {
		return returnBadRequest(c, "Invalid request", err)
	}

	config, err := thermal.ApplyConsoleSet(h.Engine.Store(), index, request.Values)
	if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, config, indentationChar)
}

// thresholdParams parses the sensor index and the command version, which
// defaults to the current version
func thresholdParams(c echo.Context) (index int, version int, err error) {
	index, err = strconv.Atoi(c.Param(urlParamIndex))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", thermal.ErrInvalidParam, err)
	}

	version = thermal.CommandVersion1
	if value := c.QueryParam(queryParamVersion); len(value) > 0 {
		version, err = strconv.Atoi(value)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", thermal.ErrInvalidVersion, err)
		}
	}
	return index, version, nil
}
