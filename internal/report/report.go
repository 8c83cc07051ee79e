// Package report serves read-only aggregate views for administrators.
package report

import "context"

// Summary is a snapshot of headline counts across the hostel.
type Summary struct {
	TotalStudents   int   `json:"total_students"`
	TotalRooms      int   `json:"total_rooms"`
	AvailableRooms  int   `json:"available_rooms"`
	ActiveBookings  int   `json:"active_bookings"`
	PendingPayments int   `json:"pending_payments"`
	PendingAmount   int64 `json:"pending_amount"`
	CollectedAmount int64 `json:"collected_amount"`
	OpenComplaints  int   `json:"open_complaints"`
	PendingLeave    int   `json:"pending_leave"`
	PendingRefunds  int   `json:"pending_refunds"`
	PendingRoommate int   `json:"pending_roommate_requests"`
}

// Repository reads aggregate figures from storage.
type Repository interface {
	Summarize(ctx context.Context) (*Summary, error)
}
