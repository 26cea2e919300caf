package repositoryImp

import (
	"gorm.io/gorm"

	"prodplan/entities"
	"prodplan/pkg/reference/repository"
)

const batchSize = 200

type referenceRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ReferenceRepository { return &referenceRepo{db} }

func (r *referenceRepo) WithTx(tx *gorm.DB) repository.ReferenceRepository { return &referenceRepo{tx} }

func (r *referenceRepo) ListEmployees() ([]entities.Employee, error) {
	var out []entities.Employee
	return out, r.db.Order("id ASC").Find(&out).Error
}

func (r *referenceRepo) ListArticles() ([]entities.Article, error) {
	var out []entities.Article
	return out, r.db.Order("id ASC").Find(&out).Error
}

func (r *referenceRepo) ListMachineGroups() ([]entities.MachineGroup, error) {
	var out []entities.MachineGroup
	return out, r.db.Order("id ASC").Find(&out).Error
}

func (r *referenceRepo) EmployeeNumbers() ([]string, error) {
	var out []string
	return out, r.db.Model(&entities.Employee{}).Pluck("number", &out).Error
}

func (r *referenceRepo) ArticleNames() ([]string, error) {
	var out []string
	return out, r.db.Model(&entities.Article{}).Pluck("name", &out).Error
}

func (r *referenceRepo) MachineGroupNames() ([]string, error) {
	var out []string
	return out, r.db.Model(&entities.MachineGroup{}).Pluck("name", &out).Error
}

func (r *referenceRepo) CreateEmployees(es []entities.Employee) error {
	if len(es) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&es, batchSize).Error
}

func (r *referenceRepo) CreateArticles(as []entities.Article) error {
	if len(as) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&as, batchSize).Error
}

func (r *referenceRepo) CreateMachineGroups(gs []entities.MachineGroup) error {
	if len(gs) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&gs, batchSize).Error
}

func (r *referenceRepo) FindEmployeeByNumber(number string) (*entities.Employee, error) {
	var e entities.Employee
	if err := r.db.Where("number = ?", number).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *referenceRepo) DeleteEmployee(id uint) (int64, error) {
	if err := r.db.Where("employee_id = ?", id).Delete(&entities.PlanItem{}).Error; err != nil {
		return 0, err
	}
	res := r.db.Delete(&entities.Employee{}, id)
	return res.RowsAffected, res.Error
}

func (r *referenceRepo) EmployeeExists(id uint) (bool, error) {
	return r.exists(&entities.Employee{}, id)
}

func (r *referenceRepo) ArticleExists(id uint) (bool, error) {
	return r.exists(&entities.Article{}, id)
}

func (r *referenceRepo) MachineGroupExists(id uint) (bool, error) {
	return r.exists(&entities.MachineGroup{}, id)
}

func (r *referenceRepo) exists(model any, id uint) (bool, error) {
	var n int64
	if err := r.db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
