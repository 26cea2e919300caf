package repositoryImp

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prodplan/entities"
	"prodplan/pkg/goal/repository"
)

type goalRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.GoalRepository { return &goalRepo{db} }

func (r *goalRepo) WithTx(tx *gorm.DB) repository.GoalRepository { return &goalRepo{tx} }

func (r *goalRepo) Get(articleID, machineGroupID uint) (int, bool, error) {
	var g entities.DefaultGoal
	err := r.db.Where("article_id = ? AND machine_group_id = ?", articleID, machineGroupID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return g.Goal, true, nil
}

func (r *goalRepo) Upsert(articleID, machineGroupID uint, goal int) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "machine_group_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"goal"}),
	}).Create(&entities.DefaultGoal{ArticleID: articleID, MachineGroupID: machineGroupID, Goal: goal}).Error
}
