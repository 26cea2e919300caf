package repository

import (
	"gorm.io/gorm"

	"prodplan/entities"
)

type ReferenceRepository interface {
	WithTx(tx *gorm.DB) ReferenceRepository

	ListEmployees() ([]entities.Employee, error)
	ListArticles() ([]entities.Article, error)
	ListMachineGroups() ([]entities.MachineGroup, error)

	EmployeeNumbers() ([]string, error)
	ArticleNames() ([]string, error)
	MachineGroupNames() ([]string, error)

	CreateEmployees(es []entities.Employee) error
	CreateArticles(as []entities.Article) error
	CreateMachineGroups(gs []entities.MachineGroup) error

	FindEmployeeByNumber(number string) (*entities.Employee, error)
	// DeleteEmployee removes the employee and every plan item it owns.
	DeleteEmployee(id uint) (int64, error)

	EmployeeExists(id uint) (bool, error)
	ArticleExists(id uint) (bool, error)
	MachineGroupExists(id uint) (bool, error)
}
