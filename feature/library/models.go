package library

import "time"

// DesiredSound is one row of the persisted desired set. The table is the
// only durable record of offline intent; everything else can be rebuilt
// from it after a restart.
type DesiredSound struct {
	ContentID string    `gorm:"primaryKey;column:content_id" json:"content_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for GORM.
func (DesiredSound) TableName() string {
	return "desired_sounds"
}
