package storage

import "time"

// RoomModel is the GORM model for rooms table
type RoomModel struct {
	Building    string `gorm:"not null;default:''"`
	Capacity    int    `gorm:"not null;check:capacity > 0"`
	CreatedAt   time.Time
	Floor       int     `gorm:"not null;default:0"`
	Humidity    float64 `gorm:"not null;default:0"`
	ID          string  `gorm:"primaryKey"`
	Maintenance bool    `gorm:"not null;default:false"`
	Name        string  `gorm:"not null;default:''"`
	Temperature float64 `gorm:"not null;default:0"`
	Type        string  `gorm:"not null;default:''"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (RoomModel) TableName() string { return "rooms" }

// ClassSessionModel is the GORM model for class_sessions table
type ClassSessionModel struct {
	Batch       string `gorm:"not null;default:''"`
	CreatedAt   time.Time
	Day         int    `gorm:"not null;index:idx_session_bucket,priority:2"`
	EndMinute   int    `gorm:"not null"`
	ID          string `gorm:"primaryKey"`
	Instructor  string `gorm:"not null;default:''"`
	Name        string `gorm:"not null;default:''"`
	RoomID      string `gorm:"not null;index:idx_session_bucket,priority:1"`
	StartMinute int    `gorm:"not null"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (ClassSessionModel) TableName() string { return "class_sessions" }

// ConflictModel is the GORM model for conflicts table
type ConflictModel struct {
	CreatedAt       time.Time
	Day             int        `gorm:"not null"`
	Description     string     `gorm:"not null;default:''"`
	DetectedAt      time.Time  `gorm:"not null"`
	FirstSessionID  string     `gorm:"not null"`
	ID              string     `gorm:"primaryKey"`
	ResolvedAt      *time.Time `gorm:"default:null"`
	RoomID          string     `gorm:"not null;index:idx_conflict_room"`
	SecondSessionID string     `gorm:"not null"`
	Status          string     `gorm:"not null;default:'pending';check:status IN ('pending','resolved','dismissed')"`
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (ConflictModel) TableName() string { return "conflicts" }
