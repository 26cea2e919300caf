package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"prodplan/config"
	"prodplan/database"
	"prodplan/pkg/importer"
	"prodplan/pkg/middleware"
	"prodplan/router"

	// Reference data
	refCtrlImp "prodplan/pkg/reference/controllerImp"
	refRepoImp "prodplan/pkg/reference/repositoryImp"
	refSvcImp "prodplan/pkg/reference/serviceImp"

	// Plan + default goals
	goalRepoImp "prodplan/pkg/goal/repositoryImp"
	planCtrlImp "prodplan/pkg/plan/controllerImp"
	planRepoImp "prodplan/pkg/plan/repositoryImp"
	planSvcImp "prodplan/pkg/plan/serviceImp"

	// Health
	healthCtrlImp "prodplan/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("[cfg] unknown TZ %q, using local time: %v", cfg.Timezone, err)
		loc = time.Local
	}

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath, cfg.DBLogLevel)

	// 3) Repos/Services
	refRepo := refRepoImp.New(db)
	refSvc := refSvcImp.NewReferenceService(db, refRepo)
	planSvc := planSvcImp.NewPlanService(db, planRepoImp.New(db), goalRepoImp.New(db), refRepo, cfg.MaxJobsPerDay)

	// 4) Optional seed import
	if cfg.SeedPath != "" {
		importer.New(refSvc, importer.Options{
			AllowedArticles:      cfg.AllowedArticles,
			AllowedMachineGroups: cfg.AllowedMachineGroups,
		}).Run(context.Background(), cfg.SeedPath)
	}

	// 5) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())
	e.Use(middleware.CORS(cfg.CORSOrigins))

	if cfg.StaticDir != "" {
		e.Static("/assets", filepath.Join(cfg.StaticDir, "assets"))
		e.File("/", filepath.Join(cfg.StaticDir, "index.html"))
		if _, err := os.Stat(filepath.Join(cfg.StaticDir, "index.html")); err != nil {
			log.Printf("WARN: static index.html not found: %v", err)
		}
	}

	// 6) Router
	r := router.New(
		e,
		refCtrlImp.New(refSvc),
		planCtrlImp.NewPlanCtrl(planSvc, loc),
		healthCtrlImp.NewHealthCtrl(db),
	)

	// 7) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
