package repository

import (
	"gorm.io/gorm"

	"prodplan/entities"
)

type PlanRepository interface {
	WithTx(tx *gorm.DB) PlanRepository

	// Effective returns, per employee, every non-void item on that employee's
	// latest planned day on or before date.
	Effective(date string) ([]entities.PlanItem, error)
	FindByID(id uint) (*entities.PlanItem, error)
	CountActive(employeeID uint, date string) (int64, error)

	Create(p *entities.PlanItem) error
	Save(p *entities.PlanItem) error
	Delete(id uint) (int64, error)
	DeleteDay(employeeID uint, date string) (int64, error)
	DeleteVoid(employeeID uint, date string) (int64, error)
}
