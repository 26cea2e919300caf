package controllerImp

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"prodplan/entities"
	"prodplan/pkg/plan/controller"
	"prodplan/pkg/plan/service"
)

type PlanCtrl struct {
	svc service.PlanService
	loc *time.Location
	now func() time.Time
}

func NewPlanCtrl(svc service.PlanService, loc *time.Location) controller.PlanController {
	if loc == nil {
		loc = time.Local
	}
	return &PlanCtrl{svc: svc, loc: loc, now: time.Now}
}

func (h *PlanCtrl) List(c echo.Context) error {
	target := c.QueryParam("target_date")
	if target == "" {
		target = h.now().In(h.loc).Format(entities.DateLayout)
	}
	out, err := h.svc.Effective(c.Request().Context(), target)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type createReq struct {
	EmployeeID     uint                `json:"employee_id"`
	ArticleID      *uint               `json:"article_id"`
	MachineGroupID *uint               `json:"machine_group_id"`
	Goal           int                 `json:"goal"`
	Date           string              `json:"date"`
	Status         entities.TaskStatus `json:"status"`
	Comment        *string             `json:"comment"`
}

func (h *PlanCtrl) Create(c echo.Context) error {
	var in createReq
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.svc.Create(c.Request().Context(), service.CreateInput{
		EmployeeID:     in.EmployeeID,
		Date:           in.Date,
		ArticleID:      in.ArticleID,
		MachineGroupID: in.MachineGroupID,
		Goal:           in.Goal,
		Status:         in.Status,
		Comment:        in.Comment,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlanCtrl) Update(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in service.PlanItemPatch
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.svc.Update(c.Request().Context(), uint(id), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlanCtrl) Delete(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), uint(id)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *PlanCtrl) DefaultGoal(c echo.Context) error {
	articleID, err := parseUint(c.QueryParam("article_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article_id"})
	}
	groupID, err := parseUint(c.QueryParam("machine_group_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid machine_group_id"})
	}
	goal, err := h.svc.DefaultGoal(c.Request().Context(), uint(articleID), uint(groupID))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"goal": goal})
}

func respondErr(c echo.Context, err error) error {
	var capErr *service.CapacityError
	switch {
	case errors.As(err, &capErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": capErr.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Plan item not found"})
	case errors.Is(err, service.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	log.Printf("[plan] %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
