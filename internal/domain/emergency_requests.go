package domain

import (
	"time"

	"github.com/google/uuid"
)

type CreateEmergencyRequest struct {
	RequesterID   uuid.UUID  `json:"requester_id" validate:"required"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	SubcategoryID uuid.UUID  `json:"subcategory_id" validate:"required"`
	Description   string     `json:"description" validate:"required,max=2000"`
	Address       string     `json:"address" validate:"required,max=500"`
	Lat           *float64   `json:"lat" validate:"required,lat"`
	Lng           *float64   `json:"lng" validate:"required,lng"`
	Phone         string     `json:"phone,omitempty" validate:"omitempty,max=20"`
	Notes         string     `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type RespondRequest struct {
	NotificationID uuid.UUID `json:"notification_id" validate:"required"`
	TechnicianID   uuid.UUID `json:"technician_id" validate:"required"`
	Accept         *bool     `json:"accept" validate:"required"`
	CurrentLat     *float64  `json:"current_lat,omitempty" validate:"omitempty,lat"`
	CurrentLng     *float64  `json:"current_lng,omitempty" validate:"omitempty,lng"`
}

const TechnicianEnRoute = "en_route"

type AssignedTechnician struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone,omitempty"`
	Lat    *float64  `json:"lat,omitempty"`
	Lng    *float64  `json:"lng,omitempty"`
	Status string    `json:"status"`
}

type NotificationView struct {
	Notification
	TechnicianName string `json:"technician_name"`
}

// EmergencyStatus is the read projection returned by every dispatch operation.
type EmergencyStatus struct {
	Request         EmergencyRequest    `json:"request"`
	Technician      *AssignedTechnician `json:"technician,omitempty"`
	Notifications   []NotificationView  `json:"notifications"`
	Outstanding     int                 `json:"outstanding"`
	SearchExhausted bool                `json:"search_exhausted"`
	AsOf            time.Time           `json:"as_of"`
}

type PendingNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	Count         int            `json:"count"`
}
