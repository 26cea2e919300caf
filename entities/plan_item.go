package entities

import "time"

// DateLayout is the on-disk and wire format of PlanItem.Date.
const DateLayout = "2006-01-02"

type TaskStatus string

const (
	StatusActive  TaskStatus = "active"
	StatusPlanned TaskStatus = "planned"
	StatusDone    TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPlanned, StatusDone:
		return true
	}
	return false
}

// PlanItem assigns an employee to an article/machine group on one day.
// A nil MachineGroupID marks the day as explicitly cleared.
type PlanItem struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Date           string     `gorm:"index;not null" json:"date"` // YYYY-MM-DD
	EmployeeID     uint       `gorm:"index;not null" json:"employee_id"`
	ArticleID      *uint      `json:"article_id"`
	MachineGroupID *uint      `gorm:"index" json:"machine_group_id"`
	Goal           int        `gorm:"not null" json:"goal"`
	QuantityDone   int        `gorm:"not null" json:"quantity_done"`
	Status         TaskStatus `gorm:"size:16;not null" json:"status"`
	Comment        *string    `json:"comment"`

	Employee     *Employee     `json:"employee,omitempty"`
	Article      *Article      `json:"article"`
	MachineGroup *MachineGroup `json:"machine_group"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (p *PlanItem) IsVoid() bool { return p.MachineGroupID == nil }

// DefaultGoal memoizes the last goal used for an article/machine group pair.
type DefaultGoal struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ArticleID      uint `gorm:"uniqueIndex:idx_default_goal_pair;not null" json:"article_id"`
	MachineGroupID uint `gorm:"uniqueIndex:idx_default_goal_pair;not null" json:"machine_group_id"`
	Goal           int  `gorm:"not null" json:"goal"`
}
