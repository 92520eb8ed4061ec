package api

import (
	"github.com/labstack/echo/v4"
	"github.com/markusressel/ecthermal/internal/controller"
	"github.com/markusressel/ecthermal/internal/curves"
	"net/http"
)

type FanState struct {
	Id          string        `json:"id"`
	RpmTarget   int           `json:"rpmTarget"`
	RpmActual   int           `json:"rpmActual"`
	AutoControl bool          `json:"autoControl"`
	Strategy    string        `json:"strategy"`
	Output      curves.Output `json:"output"`
	// ActiveTable and Level are only set for the table strategy
	ActiveTable string             `json:"activeTable,omitempty"`
	Level       *curves.LevelState `json:"level,omitempty"`
}

type AutoControlRequest struct {
	Enabled bool `json:"enabled"`
}

type RpmRequest struct {
	Rpm int `json:"rpm"`
}

func (h *handlers) registerFanEndpoints(rest *echo.Echo) {
	group := rest.Group("/fan")

	group.GET("/", h.getFans)
	group.GET("/:"+urlParamId+"/", h.getFan)
	group.POST("/:"+urlParamId+"/auto/", h.setAutoControl)
	group.POST("/:"+urlParamId+"/rpm/", h.setRpm)
}

func (h *handlers) getFans(c echo.Context) error {
	var data []FanState
	for _, contr := range h.Controllers.Controllers() {
		data = append(data, fanState(c, contr))
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func (h *handlers) getFan(c echo.Context) error {
	id := c.Param(urlParamId)
	contr, exists := h.Controllers.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, fanState(c, contr), indentationChar)
}

func (h *handlers) setAutoControl(c echo.Context) error {
	id := c.Param(urlParamId)
	contr, exists := h.Controllers.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	var request AutoControlRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, "Invalid request", err)
	}
	contr.SetAutoControl(request.Enabled)
	return c.JSONPretty(http.StatusOK, fanState(c, contr), indentationChar)
}

func (h *handlers) setRpm(c echo.Context) error {
	id := c.Param(urlParamId)
	contr, exists := h.Controllers.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}

	var request RpmRequest
	if err := c.Bind(&request); err != nil {
		return returnBadRequest(c, "Invalid request", err)
	}
	if err := contr.SetManualRpm(c.Request().Context(), request.Rpm); err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, fanState(c, contr), indentationChar)
}

func fanState(c echo.Context, contr *controller.FanController) FanState {
	fan := contr.GetFan()
	strategy := contr.GetStrategy()

	state := FanState{
		Id:          fan.GetId(),
		RpmTarget:   fan.GetRpmTarget(),
		RpmActual:   -1,
		AutoControl: contr.IsAutoControl(),
		Strategy:    strategy.GetName(),
		Output:      strategy.CurrentOutput(),
	}
	if rpm, err := fan.GetRpmActual(c.Request().Context()); err == nil {
		state.RpmActual = rpm
	}
	if table, ok := strategy.(*curves.TableStrategy); ok {
		level := table.State()
		state.ActiveTable = table.ActiveTable()
		state.Level = &level
	}
	return state
}
