package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestState string

const (
	RequestPending   RequestState = "pending"
	RequestAssigned  RequestState = "assigned"
	RequestCompleted RequestState = "completed"
	RequestCancelled RequestState = "cancelled"
	RequestRejected  RequestState = "rejected"
)

type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityNormal RequestPriority = "normal"
	PriorityHigh   RequestPriority = "high"
	PriorityUrgent RequestPriority = "urgent"
)

// EmergencyRequest is the aggregate mutated by the dispatch orchestrator.
// Technicians and notifications are referenced by id only.
type EmergencyRequest struct {
	ID            uuid.UUID       `json:"id"`
	RequesterID   uuid.UUID       `json:"requester_id"`
	SubcategoryID uuid.UUID       `json:"subcategory_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Lat           float64         `json:"lat"`
	Lng           float64         `json:"lng"`
	State         RequestState    `json:"state"`
	Priority      RequestPriority `json:"priority"`
	Urgent        bool            `json:"urgent"`
	TechnicianID  *uuid.UUID      `json:"technician_id,omitempty"`
	// SearchRadiusKM is the last radius a dispatch round searched.
	SearchRadiusKM float64    `json:"search_radius_km"`
	DispatchRound  int        `json:"dispatch_round"`
	CreatedAt      time.Time  `json:"created_at"`
	AssignedAt     *time.Time `json:"assigned_at,omitempty"`
}

func (r *EmergencyRequest) IsPending() bool { return r.State == RequestPending }
