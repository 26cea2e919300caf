// Command import seeds reference data from a punch-log spreadsheet.
//
//	import [path]
//
// The path defaults to SEED_PATH.
package main

import (
	"context"
	"log"
	"os"

	"prodplan/config"
	"prodplan/database"
	"prodplan/pkg/importer"
	refRepoImp "prodplan/pkg/reference/repositoryImp"
	refSvcImp "prodplan/pkg/reference/serviceImp"
)

func main() {
	cfg := config.Load()
	path := cfg.SeedPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		log.Fatal("usage: import <spreadsheet> (or set SEED_PATH)")
	}

	db := database.OpenSQLite(cfg.DBPath, cfg.DBLogLevel)
	defer database.Close(db)

	refSvc := refSvcImp.NewReferenceService(db, refRepoImp.New(db))
	res := importer.New(refSvc, importer.Options{
		AllowedArticles:      cfg.AllowedArticles,
		AllowedMachineGroups: cfg.AllowedMachineGroups,
	}).Run(context.Background(), path)

	if len(res.Errors) > 0 {
		log.Printf("import finished with %d error(s)", len(res.Errors))
		return
	}
	log.Print("import successful")
}
