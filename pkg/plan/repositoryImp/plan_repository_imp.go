package repositoryImp

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prodplan/entities"
	"prodplan/pkg/plan/repository"
)

type planRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanRepository { return &planRepo{db} }

func (r *planRepo) WithTx(tx *gorm.DB) repository.PlanRepository { return &planRepo{tx} }

func (r *planRepo) hydrated() *gorm.DB {
	return r.db.Preload("Employee").Preload("Article").Preload("MachineGroup")
}

func (r *planRepo) Effective(date string) ([]entities.PlanItem, error) {
	latest := r.db.Model(&entities.PlanItem{}).
		Select("employee_id, MAX(date) AS max_date").
		Where("date <= ?", date).
		Group("employee_id")

	var out []entities.PlanItem
	err := r.hydrated().
		Select("plan_items.*").
		Joins("JOIN (?) AS latest ON latest.employee_id = plan_items.employee_id AND latest.max_date = plan_items.date", latest).
		Where("plan_items.machine_group_id IS NOT NULL").
		Order("plan_items.employee_id ASC, plan_items.id ASC").
		Find(&out).Error
	return out, err
}

func (r *planRepo) FindByID(id uint) (*entities.PlanItem, error) {
	var p entities.PlanItem
	if err := r.hydrated().First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) CountActive(employeeID uint, date string) (int64, error) {
	var n int64
	err := r.db.Model(&entities.PlanItem{}).
		Where("employee_id = ? AND date = ? AND machine_group_id IS NOT NULL", employeeID, date).
		Count(&n).Error
	return n, err
}

func (r *planRepo) Create(p *entities.PlanItem) error {
	return r.db.Omit(clause.Associations).Create(p).Error
}

func (r *planRepo) Save(p *entities.PlanItem) error {
	return r.db.Omit(clause.Associations).Save(p).Error
}

func (r *planRepo) Delete(id uint) (int64, error) {
	res := r.db.Delete(&entities.PlanItem{}, id)
	return res.RowsAffected, res.Error
}

func (r *planRepo) DeleteDay(employeeID uint, date string) (int64, error) {
	res := r.db.Where("employee_id = ? AND date = ?", employeeID, date).Delete(&entities.PlanItem{})
	return res.RowsAffected, res.Error
}

func (r *planRepo) DeleteVoid(employeeID uint, date string) (int64, error) {
	res := r.db.Where("employee_id = ? AND date = ? AND machine_group_id IS NULL", employeeID, date).Delete(&entities.PlanItem{})
	return res.RowsAffected, res.Error
}
