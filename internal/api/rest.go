package api

import (
	"errors"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/ecthermal/internal/controller"
	"github.com/markusressel/ecthermal/internal/events"
	"github.com/markusressel/ecthermal/internal/persistence"
	"github.com/markusressel/ecthermal/internal/thermal"
	"github.com/prometheus/client_golang/prometheus"
	"net/http"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Dependencies are the daemon components served by the REST api
type Dependencies struct {
	Engine      *thermal.Engine
	Controllers *controller.Group
	Events      *events.Ring
	// Persistence is optional, it serves the event journal
	Persistence persistence.Persistence
	// Registerer receives the request metrics, a private registry is used if nil
	Registerer prometheus.Registerer
}

type handlers struct {
	Dependencies
	hostCommands *thermal.HostCommands
}

func CreateRestService(deps Dependencies) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "ecthermal",
		Subsystem:  "api",
		Registerer: registerer,
	}))

	h := &handlers{
		Dependencies: deps,
		hostCommands: &thermal.HostCommands{Store: deps.Engine.Store()},
	}

	echoRest.GET("/alive/", isAlive)
	echoRest.GET("/status/", h.getStatus)

	h.registerSensorEndpoints(echoRest)
	h.registerFanEndpoints(echoRest)
	h.registerThermalEndpoints(echoRest)
	h.registerEventEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "bad request" message
func returnBadRequest(c echo.Context, name string, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    name,
		Message: e.Error(),
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	switch {
	case errors.Is(e, thermal.ErrInvalidParam):
		return returnBadRequest(c, "Invalid parameter", e)
	case errors.Is(e, thermal.ErrInvalidVersion):
		return returnBadRequest(c, "Invalid version", e)
	}
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
