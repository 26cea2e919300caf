// Package importer seeds employees, articles and machine groups from a punch-log spreadsheet.
package importer

import (
	"context"
	"log"
	"strings"

	"prodplan/pkg/reference/service"
)

// Options restrict which article and machine group names are accepted.
// An empty list accepts every name.
type Options struct {
	AllowedArticles      []string
	AllowedMachineGroups []string
}

type Result struct {
	Rows          int      `json:"rows"`
	Employees     int      `json:"employees"`
	Articles      int      `json:"articles"`
	MachineGroups int      `json:"machine_groups"`
	Errors        []string `json:"errors,omitempty"`
}

type Importer struct {
	refs service.ReferenceService
	opts Options
}

func New(refs service.ReferenceService, opts Options) *Importer {
	return &Importer{refs: refs, opts: opts}
}

// Run imports path. Read failures are logged and leave the store untouched.
func (im *Importer) Run(ctx context.Context, path string) Result {
	rows, err := ReadFile(path)
	if err != nil {
		log.Printf("[import] skipping %s: %v", path, err)
		return Result{Errors: []string{err.Error()}}
	}
	res := im.Apply(ctx, rows)
	log.Printf("[import] %s: %d rows, +%d employees, +%d articles, +%d machine groups",
		path, res.Rows, res.Employees, res.Articles, res.MachineGroups)
	return res
}

// Apply stores the new keys found in rows. Each section commits on its own,
// so a failing section does not stop the others.
func (im *Importer) Apply(ctx context.Context, rows []Row) Result {
	res := Result{Rows: len(rows)}

	emps := make([]service.EmployeeCandidate, 0, len(rows))
	var articles, groups []string
	allowArt := allowList(im.opts.AllowedArticles)
	allowGrp := allowList(im.opts.AllowedMachineGroups)
	for _, r := range rows {
		emps = append(emps, service.EmployeeCandidate{Number: r.EmployeeNumber, Name: r.EmployeeName})
		if allowArt(r.Article) {
			articles = append(articles, r.Article)
		}
		if allowGrp(r.MachineGroup) {
			groups = append(groups, r.MachineGroup)
		}
	}

	var err error
	if res.Employees, err = im.refs.ImportEmployees(ctx, emps); err != nil {
		log.Printf("[import] employees: %v", err)
		res.Errors = append(res.Errors, err.Error())
	}
	if res.Articles, err = im.refs.ImportArticles(ctx, articles); err != nil {
		log.Printf("[import] articles: %v", err)
		res.Errors = append(res.Errors, err.Error())
	}
	if res.MachineGroups, err = im.refs.ImportMachineGroups(ctx, groups); err != nil {
		log.Printf("[import] machine groups: %v", err)
		res.Errors = append(res.Errors, err.Error())
	}
	return res
}

func allowList(names []string) func(string) bool {
	if len(names) == 0 {
		return func(string) bool { return true }
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.TrimSpace(n)] = struct{}{}
	}
	return func(s string) bool {
		_, ok := set[strings.TrimSpace(s)]
		return ok
	}
}
