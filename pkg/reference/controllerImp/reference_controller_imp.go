package controllerImp

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"prodplan/pkg/reference/service"
)

type ReferenceCtrl struct{ s service.ReferenceService }

func New(s service.ReferenceService) *ReferenceCtrl { return &ReferenceCtrl{s: s} }

func (h *ReferenceCtrl) Data(c echo.Context) error {
	out, err := h.s.Data(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type createEmployeeReq struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

func (h *ReferenceCtrl) CreateEmployee(c echo.Context) error {
	var in createEmployeeReq
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	e, err := h.s.CreateEmployee(c.Request().Context(), in.Number, in.Name)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *ReferenceCtrl) DeleteEmployee(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.s.DeleteEmployee(c.Request().Context(), uint(id)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func respondErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Employee not found"})
	case errors.Is(err, service.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	log.Printf("[reference] %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
