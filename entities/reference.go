package entities

type Employee struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Number string `gorm:"uniqueIndex;not null" json:"number"`
	Name   string `gorm:"not null" json:"name"`
}

type Article struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type MachineGroup struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
