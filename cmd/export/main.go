// Command export prints the reference data as JSON, filtered by the import
// allow-lists and EXPORT_EXCLUDED_EMPLOYEES, for seeding offline front-ends.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"prodplan/config"
	"prodplan/database"
	refRepoImp "prodplan/pkg/reference/repositoryImp"
	"prodplan/pkg/reference/service"
	refSvcImp "prodplan/pkg/reference/serviceImp"
)

func main() {
	cfg := config.Load()
	db := database.OpenSQLite(cfg.DBPath, "silent")
	defer database.Close(db)

	refSvc := refSvcImp.NewReferenceService(db, refRepoImp.New(db))
	snap, err := refSvc.Export(context.Background(), service.ExportFilter{
		ExcludedEmployees: cfg.ExcludedEmployees,
		Articles:          cfg.AllowedArticles,
		MachineGroups:     cfg.AllowedMachineGroups,
	})
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
