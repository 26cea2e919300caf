package service

import (
	"context"
	"errors"

	"prodplan/entities"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")
)

// Snapshot is the full reference dump served to the scheduling UI.
type Snapshot struct {
	Employees     []entities.Employee     `json:"employees"`
	Articles      []entities.Article      `json:"articles"`
	MachineGroups []entities.MachineGroup `json:"machine_groups"`
}

// ExportFilter narrows a Snapshot. Empty allow-lists keep everything.
type ExportFilter struct {
	ExcludedEmployees []string
	Articles          []string
	MachineGroups     []string
}

type EmployeeCandidate struct {
	Number string
	Name   string
}

type ReferenceService interface {
	Data(ctx context.Context) (*Snapshot, error)
	Export(ctx context.Context, f ExportFilter) (*Snapshot, error)

	CreateEmployee(ctx context.Context, number, name string) (*entities.Employee, error)
	DeleteEmployee(ctx context.Context, id uint) error

	// Import* insert candidates whose key is not stored yet and return how many were added.
	ImportEmployees(ctx context.Context, cs []EmployeeCandidate) (int, error)
	ImportArticles(ctx context.Context, names []string) (int, error)
	ImportMachineGroups(ctx context.Context, names []string) (int, error)
}
