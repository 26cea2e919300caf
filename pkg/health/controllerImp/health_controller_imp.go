package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"prodplan/entities"
)

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbCheck := h.ping(ctx)
	schema := check{OK: dbCheck.OK}
	if dbCheck.OK {
		for _, m := range []any{&entities.Employee{}, &entities.PlanItem{}, &entities.DefaultGoal{}} {
			if !h.db.WithContext(ctx).Migrator().HasTable(m) {
				schema = check{Err: "missing tables, restart to migrate"}
				break
			}
		}
	}

	allOK := dbCheck.OK && schema.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, echo.Map{
		"status":     echo.Map{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     echo.Map{"database": dbCheck, "schema": schema},
		"time":       time.Now().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) ping(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}
