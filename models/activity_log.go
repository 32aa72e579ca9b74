package models

import "time"

// ActivityLog is an append-only record of who did what to which entity.
// Writes are best-effort; readers are the admin back office.
type ActivityLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ActorType    string    `json:"actor_type"`
	ActorID      uint      `json:"actor_id"`
	ActivityType string    `json:"activity_type" gorm:"index"`
	Description  string    `json:"description"`
	EntityType   string    `json:"entity_type" gorm:"index"`
	EntityID     uint      `json:"entity_id"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
