package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryMusic      = "music"
	CategorySports     = "sports"
	CategoryConference = "conference"
	CategoryArt        = "art"
	CategoryTheater    = "theater"
	CategoryOther      = "other"
)

var EventCategories = []string{
	CategoryMusic,
	CategorySports,
	CategoryConference,
	CategoryArt,
	CategoryTheater,
	CategoryOther,
}

func IsValidCategory(category string) bool {
	for _, c := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Event struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	StartTime   time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time      `gorm:"not null" json:"end_time"`
	Location    string         `gorm:"not null" json:"location"`
	Category    string         `gorm:"not null;default:'other';index" json:"category"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	OrganizerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer   User           `gorm:"foreignKey:OrganizerID" json:"organizer"`
	Tickets     []Ticket       `gorm:"constraint:OnDelete:CASCADE" json:"tickets,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

func (event *Event) IsPast() bool {
	return event.EndTime.Before(time.Now())
}

func (event *Event) HasStarted() bool {
	return !event.StartTime.After(time.Now())
}
