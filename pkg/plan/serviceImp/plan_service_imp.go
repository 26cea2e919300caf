package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"prodplan/entities"
	goalrepo "prodplan/pkg/goal/repository"
	planrepo "prodplan/pkg/plan/repository"
	"prodplan/pkg/plan/service"
	refrepo "prodplan/pkg/reference/repository"
)

// DefaultMaxJobsPerDay caps active items per employee and day.
const DefaultMaxJobsPerDay = 4

type planSvc struct {
	db        *gorm.DB
	items     planrepo.PlanRepository
	goals     goalrepo.GoalRepository
	refs      refrepo.ReferenceRepository
	maxPerDay int
}

func NewPlanService(db *gorm.DB, items planrepo.PlanRepository, goals goalrepo.GoalRepository, refs refrepo.ReferenceRepository, maxPerDay int) service.PlanService {
	if maxPerDay <= 0 {
		maxPerDay = DefaultMaxJobsPerDay
	}
	return &planSvc{db: db, items: items, goals: goals, refs: refs, maxPerDay: maxPerDay}
}

func (s *planSvc) Effective(ctx context.Context, targetDate string) ([]entities.PlanItem, error) {
	d, err := normalizeDate(targetDate)
	if err != nil {
		return nil, err
	}
	out, err := s.items.WithTx(s.db.WithContext(ctx)).Effective(d)
	if err != nil {
		return nil, fmt.Errorf("effective plan %s: %w", d, err)
	}
	if out == nil {
		out = []entities.PlanItem{}
	}
	return out, nil
}

func (s *planSvc) Create(ctx context.Context, in service.CreateInput) (*entities.PlanItem, error) {
	d, err := normalizeDate(in.Date)
	if err != nil {
		return nil, err
	}
	if in.EmployeeID == 0 {
		return nil, fmt.Errorf("%w: employee_id is required", service.ErrInvalidInput)
	}
	if in.Goal < 0 {
		return nil, fmt.Errorf("%w: goal must not be negative", service.ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = entities.StatusPlanned
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", service.ErrInvalidInput, in.Status)
	}

	item := &entities.PlanItem{
		Date:           d,
		EmployeeID:     in.EmployeeID,
		ArticleID:      in.ArticleID,
		MachineGroupID: in.MachineGroupID,
		Goal:           in.Goal,
		Status:         in.Status,
		Comment:        in.Comment,
	}

	db := s.db.WithContext(ctx)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(s.refs.WithTx(tx), &in.EmployeeID, in.ArticleID, in.MachineGroupID); err != nil {
			return err
		}
		items := s.items.WithTx(tx)

		if item.IsVoid() {
			n, err := items.DeleteDay(item.EmployeeID, d)
			if err != nil {
				return err
			}
			log.Printf("[plan] cleared %s for employee %d (%d items removed)", d, item.EmployeeID, n)
			return items.Create(item)
		}

		active, err := items.CountActive(item.EmployeeID, d)
		if err != nil {
			return err
		}
		if active >= int64(s.maxPerDay) {
			return &service.CapacityError{Limit: s.maxPerDay}
		}
		if _, err := items.DeleteVoid(item.EmployeeID, d); err != nil {
			return err
		}
		if err := items.Create(item); err != nil {
			return err
		}
		if item.ArticleID != nil {
			return s.goals.WithTx(tx).Upsert(*item.ArticleID, *item.MachineGroupID, item.Goal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.items.WithTx(db).FindByID(item.ID)
}

// Update applies only the supplied fields. It deliberately does not re-run the
// daily cap or void exclusivity checks that Create enforces.
func (s *planSvc) Update(ctx context.Context, id uint, p service.PlanItemPatch) (*entities.PlanItem, error) {
	if p.Goal != nil && *p.Goal < 0 {
		return nil, fmt.Errorf("%w: goal must not be negative", service.ErrInvalidInput)
	}
	if p.QuantityDone != nil && *p.QuantityDone < 0 {
		return nil, fmt.Errorf("%w: quantity_done must not be negative", service.ErrInvalidInput)
	}
	if p.Status != nil && !p.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", service.ErrInvalidInput, *p.Status)
	}
	var date string
	if p.Date != nil {
		d, err := normalizeDate(*p.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}

	db := s.db.WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		items := s.items.WithTx(tx)
		cur, err := items.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %d", service.ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		if err := checkRefs(s.refs.WithTx(tx), p.EmployeeID, p.ArticleID, p.MachineGroupID); err != nil {
			return err
		}
		if p.Date != nil {
			cur.Date = date
		}
		if p.EmployeeID != nil {
			cur.EmployeeID = *p.EmployeeID
		}
		if p.ArticleID != nil {
			cur.ArticleID = p.ArticleID
		}
		if p.MachineGroupID != nil {
			cur.MachineGroupID = p.MachineGroupID
		}
		if p.Goal != nil {
			cur.Goal = *p.Goal
		}
		if p.QuantityDone != nil {
			cur.QuantityDone = *p.QuantityDone
		}
		if p.Status != nil {
			cur.Status = *p.Status
		}
		if p.Comment != nil {
			cur.Comment = p.Comment
		}
		// associations are reloaded after commit
		cur.Employee, cur.Article, cur.MachineGroup = nil, nil, nil
		return items.Save(cur)
	})
	if err != nil {
		return nil, err
	}
	return s.items.WithTx(db).FindByID(id)
}

func (s *planSvc) Delete(ctx context.Context, id uint) error {
	n, err := s.items.WithTx(s.db.WithContext(ctx)).Delete(id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", service.ErrNotFound, id)
	}
	return nil
}

func (s *planSvc) DefaultGoal(ctx context.Context, articleID, machineGroupID uint) (int, error) {
	goal, _, err := s.goals.WithTx(s.db.WithContext(ctx)).Get(articleID, machineGroupID)
	return goal, err
}

// checkRefs verifies that every non-nil id points at a stored row.
func checkRefs(refs refrepo.ReferenceRepository, employeeID, articleID, machineGroupID *uint) error {
	checks := []struct {
		name  string
		id    *uint
		exist func(uint) (bool, error)
	}{
		{"employee", employeeID, refs.EmployeeExists},
		{"article", articleID, refs.ArticleExists},
		{"machine group", machineGroupID, refs.MachineGroupExists},
	}
	for _, c := range checks {
		if c.id == nil {
			continue
		}
		ok, err := c.exist(*c.id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s %d does not exist", service.ErrInvalidInput, c.name, *c.id)
		}
	}
	return nil
}

func normalizeDate(s string) (string, error) {
	t, err := time.Parse(entities.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", service.ErrInvalidInput, s)
	}
	return t.Format(entities.DateLayout), nil
}
