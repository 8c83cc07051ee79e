// Package notice holds admin-authored announcements: plain notices for a
// target audience and scheduled events.
package notice

import "time"

// Audience selects who a notice is shown to.
type Audience string

const (
	AudienceAll      Audience = "ALL"
	AudienceStudents Audience = "STUDENTS"
	AudienceAdmins   Audience = "ADMINS"
)

// Audiences lists the accepted notice audiences for validation.
func Audiences() []string {
	return []string{string(AudienceAll), string(AudienceStudents), string(AudienceAdmins)}
}

// Notice is a posted announcement.
type Notice struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Audience  Audience  `json:"audience"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event is a scheduled happening at the hostel.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	AuthorID    string    `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
}
