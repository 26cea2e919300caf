package repository

import "gorm.io/gorm"

type GoalRepository interface {
	WithTx(tx *gorm.DB) GoalRepository
	// Get returns the memoized goal and whether one exists.
	Get(articleID, machineGroupID uint) (int, bool, error)
	Upsert(articleID, machineGroupID uint, goal int) error
}
