package model

import "time"

// Note is a free-form text record with no scheduling behavior.
type Note struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Topic     string   `json:"topic,omitempty"`
	Tags      []string `gorm:"serializer:json" json:"tags"`
	Active    bool     `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
