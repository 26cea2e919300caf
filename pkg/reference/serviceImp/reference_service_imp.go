package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"prodplan/entities"
	repo "prodplan/pkg/reference/repository"
	"prodplan/pkg/reference/service"
)

type referenceSvc struct {
	db *gorm.DB
	r  repo.ReferenceRepository
}

func NewReferenceService(db *gorm.DB, r repo.ReferenceRepository) service.ReferenceService {
	return &referenceSvc{db: db, r: r}
}

func (s *referenceSvc) Data(ctx context.Context) (*service.Snapshot, error) {
	r := s.r.WithTx(s.db.WithContext(ctx))
	out := &service.Snapshot{}
	var err error
	if out.Employees, err = r.ListEmployees(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	if out.Articles, err = r.ListArticles(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if out.MachineGroups, err = r.ListMachineGroups(); err != nil {
		return nil, fmt.Errorf("list machine groups: %w", err)
	}
	// encode as [] rather than null
	if out.Employees == nil {
		out.Employees = []entities.Employee{}
	}
	if out.Articles == nil {
		out.Articles = []entities.Article{}
	}
	if out.MachineGroups == nil {
		out.MachineGroups = []entities.MachineGroup{}
	}
	return out, nil
}

func (s *referenceSvc) Export(ctx context.Context, f service.ExportFilter) (*service.Snapshot, error) {
	all, err := s.Data(ctx)
	if err != nil {
		return nil, err
	}
	excluded := toSet(f.ExcludedEmployees)
	articles := toSet(f.Articles)
	groups := toSet(f.MachineGroups)

	out := &service.Snapshot{
		Employees:     []entities.Employee{},
		Articles:      []entities.Article{},
		MachineGroups: []entities.MachineGroup{},
	}
	for _, e := range all.Employees {
		if _, skip := excluded[e.Name]; !skip {
			out.Employees = append(out.Employees, e)
		}
	}
	for _, a := range all.Articles {
		if _, ok := articles[a.Name]; ok || len(articles) == 0 {
			out.Articles = append(out.Articles, a)
		}
	}
	for _, g := range all.MachineGroups {
		if _, ok := groups[g.Name]; ok || len(groups) == 0 {
			out.MachineGroups = append(out.MachineGroups, g)
		}
	}
	return out, nil
}

func (s *referenceSvc) CreateEmployee(ctx context.Context, number, name string) (*entities.Employee, error) {
	number, name = strings.TrimSpace(number), strings.TrimSpace(name)
	if number == "" || name == "" {
		return nil, fmt.Errorf("%w: number and name are required", service.ErrInvalidInput)
	}
	batch := []entities.Employee{{Number: number, Name: name}}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.r.WithTx(tx)
		_, err := r.FindEmployeeByNumber(number)
		if err == nil {
			return fmt.Errorf("%w: employee number %s", service.ErrDuplicate, number)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return r.CreateEmployees(batch)
	})
	if err != nil {
		return nil, err
	}
	return &batch[0], nil
}

func (s *referenceSvc) DeleteEmployee(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.r.WithTx(tx).DeleteEmployee(id)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: employee %d", service.ErrNotFound, id)
		}
		return nil
	})
}

func (s *referenceSvc) ImportEmployees(ctx context.Context, cs []service.EmployeeCandidate) (int, error) {
	var added int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.r.WithTx(tx)
		existing, err := r.EmployeeNumbers()
		if err != nil {
			return err
		}
		seen := toSet(existing)
		var batch []entities.Employee
		for _, c := range cs {
			number, name := strings.TrimSpace(c.Number), strings.TrimSpace(c.Name)
			if number == "" || name == "" {
				continue
			}
			if _, dup := seen[number]; dup {
				continue
			}
			seen[number] = struct{}{}
			batch = append(batch, entities.Employee{Number: number, Name: name})
		}
		added = len(batch)
		return r.CreateEmployees(batch)
	})
	if err != nil {
		return 0, fmt.Errorf("import employees: %w", err)
	}
	return added, nil
}

func (s *referenceSvc) ImportArticles(ctx context.Context, names []string) (int, error) {
	var added int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.r.WithTx(tx)
		existing, err := r.ArticleNames()
		if err != nil {
			return err
		}
		var batch []entities.Article
		for _, n := range missingNames(existing, names) {
			batch = append(batch, entities.Article{Name: n})
		}
		added = len(batch)
		return r.CreateArticles(batch)
	})
	if err != nil {
		return 0, fmt.Errorf("import articles: %w", err)
	}
	return added, nil
}

func (s *referenceSvc) ImportMachineGroups(ctx context.Context, names []string) (int, error) {
	var added int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.r.WithTx(tx)
		existing, err := r.MachineGroupNames()
		if err != nil {
			return err
		}
		var batch []entities.MachineGroup
		for _, n := range missingNames(existing, names) {
			batch = append(batch, entities.MachineGroup{Name: n})
		}
		added = len(batch)
		return r.CreateMachineGroups(batch)
	})
	if err != nil {
		return 0, fmt.Errorf("import machine groups: %w", err)
	}
	return added, nil
}

// missingNames trims candidates and keeps, in order, the non-empty ones not in existing or earlier in the batch.
func missingNames(existing, candidates []string) []string {
	seen := toSet(existing)
	var out []string
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func toSet(xs []string) map[string]struct{} {
	m := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		m[x] = struct{}{}
	}
	return m
}
