package models

type ProcessModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:255"`
	Multitower  bool   `gorm:"not null;default:false"`
	TowerID     *uint  `gorm:"index"`
	FloorID     *uint
	CostExempt  bool   `gorm:"not null;default:false;index"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (ProcessModel) TableName() string {
	return "processes"
}

type TaskModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Description  string `gorm:"size:255"`
	ProcessID    uint   `gorm:"not null;index"`
	DisplayOrder int    `gorm:"not null;default:0;index"`
	Kind         string `gorm:"size:20;not null;default:'normal'"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

type ResultModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Description  string `gorm:"size:255"`
	SourceTaskID uint   `gorm:"not null;index"`
	DestTaskID   uint   `gorm:"not null;index"`
}

func (ResultModel) TableName() string {
	return "results"
}

type TicketTypeModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	ProcessID uint   `gorm:"not null;index"`
}

func (TicketTypeModel) TableName() string {
	return "ticket_types"
}

type SubtypeModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	TicketTypeID uint   `gorm:"not null;index"`
	ProcessID    uint   `gorm:"not null;index"`
	SLAHours     *int
	Priority     *int
}

func (SubtypeModel) TableName() string {
	return "subtypes"
}

type FieldModel struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:100;not null"`
	Label string `gorm:"size:150;not null"`
	Kind  int    `gorm:"not null;default:1"`
}

func (FieldModel) TableName() string {
	return "fields"
}

// SubtypeFieldModel binds a field definition to a subtype with its form
// position and, for select fields, the option dictionary.
type SubtypeFieldModel struct {
	ID           uint `gorm:"primaryKey"`
	SubtypeID    uint `gorm:"not null;index"`
	FieldID      uint `gorm:"not null;index"`
	DisplayOrder int  `gorm:"not null;default:0"`
	DictionaryID uint `gorm:"index"`
}

func (SubtypeFieldModel) TableName() string {
	return "subtype_fields"
}

type FieldOptionModel struct {
	ID           uint   `gorm:"primaryKey"`
	DictionaryID uint   `gorm:"not null;index"`
	Value        string `gorm:"size:150;not null"`
}

func (FieldOptionModel) TableName() string {
	return "field_options"
}
