package domain

import "time"

// RequestStatus represents the current status of a waste-collection request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "Pending"
	RequestStatusPaid      RequestStatus = "Paid"
	RequestStatusAssigned  RequestStatus = "Assigned"
	RequestStatusCollected RequestStatus = "Collected"
)

// WasteRequest represents a citizen's request to have waste collected.
// Registered users are linked via UserID; guests carry name and phone inline.
type WasteRequest struct {
	ID          string
	UserID      string
	GuestName   string
	GuestPhone  string
	Location    string
	WasteType   string
	Status      RequestStatus
	Notes       string
	RequestedAt time.Time
	PreferredAt *time.Time
}
