package service

import (
	"context"
	"errors"
	"fmt"

	"prodplan/entities"
)

var (
	ErrNotFound         = errors.New("plan item not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrCapacityExceeded = errors.New("daily job capacity exceeded")
)

// CapacityError reports a rejected assignment. It matches ErrCapacityExceeded.
type CapacityError struct{ Limit int }

func (e *CapacityError) Error() string { return fmt.Sprintf("Max %d jobs per day allowed.", e.Limit) }

func (e *CapacityError) Is(target error) bool { return target == ErrCapacityExceeded }

// CreateInput describes a new plan item. A nil MachineGroupID clears the day.
type CreateInput struct {
	EmployeeID     uint
	Date           string
	ArticleID      *uint
	MachineGroupID *uint
	Goal           int
	Status         entities.TaskStatus
	Comment        *string
}

// PlanItemPatch carries the fields of a partial update; nil means untouched.
type PlanItemPatch struct {
	Date           *string              `json:"date"`
	EmployeeID     *uint                `json:"employee_id"`
	ArticleID      *uint                `json:"article_id"`
	MachineGroupID *uint                `json:"machine_group_id"`
	Goal           *int                 `json:"goal"`
	QuantityDone   *int                 `json:"quantity_done"`
	Status         *entities.TaskStatus `json:"status"`
	Comment        *string              `json:"comment"`
}

type PlanService interface {
	Effective(ctx context.Context, targetDate string) ([]entities.PlanItem, error)
	Create(ctx context.Context, in CreateInput) (*entities.PlanItem, error)
	Update(ctx context.Context, id uint, patch PlanItemPatch) (*entities.PlanItem, error)
	Delete(ctx context.Context, id uint) error
	// DefaultGoal returns 0 when the pair has never been planned.
	DefaultGoal(ctx context.Context, articleID, machineGroupID uint) (int, error)
}
