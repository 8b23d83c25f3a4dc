package event

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"gorm.io/datatypes"

	"github.com/vadkul/vadkul-backend/internal/discovery"
)

// ErrEventFull is returned when a join hits the participant cap.
// "fullbokat" is the user-facing message the app shows verbatim.
var ErrEventFull = errors.New("fullbokat")

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`

	// Coordinates are optional; events without a position are skipped by
	// radius searches and sort to the end of distance ordering.
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	LocationName string   `gorm:"type:varchar(255)" json:"location_name"`

	Category       string `gorm:"type:varchar(100);not null;index" json:"category"`
	CustomCategory string `gorm:"type:varchar(100)" json:"custom_category,omitempty"`

	MinParticipants int `json:"min_participants"`
	MaxParticipants int `json:"max_participants"` // 0 = unlimited

	// MinAge/MaxAge and AgeCategory are set independently; the app never
	// derives one from the other.
	MinAge      int    `json:"min_age"`
	MaxAge      int    `json:"max_age"`
	AgeCategory string `gorm:"type:varchar(20)" json:"age_category"`

	Price int `json:"price"` // 0 = free

	// Host info is a snapshot copied at creation and never refreshed, so
	// event cards render without a join even after the host edits their
	// profile.
	HostUserID uint           `gorm:"not null;index" json:"host_user_id"`
	Host       datatypes.JSON `gorm:"type:jsonb" json:"host"`

	// Attendees is a JSONB list of snapshots, one per joined user
	Attendees datatypes.JSON `gorm:"type:jsonb" json:"attendees"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides table name for Event
func (Event) TableName() string {
	return "events"
}

// HostSnapshot is the denormalized host info stored on the event
type HostSnapshot struct {
	UserID   uint    `json:"user_id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Verified bool    `json:"verified"`
	PhotoURL string  `json:"photo_url,omitempty"`
}

// Attendee is the denormalized participant info stored on the event
type Attendee struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// AttendeeList decodes the stored attendee snapshots. A missing or empty
// column decodes to an empty list.
func (e *Event) AttendeeList() ([]Attendee, error) {
	if len(e.Attendees) == 0 {
		return []Attendee{}, nil
	}
	var list []Attendee
	if err := json.Unmarshal(e.Attendees, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetAttendees encodes the list back into the JSONB column
func (e *Event) SetAttendees(list []Attendee) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	e.Attendees = datatypes.JSON(raw)
	return nil
}

// AddAttendee appends a to the list if there is room. Joining twice is a
// no-op (added=false, nil error). A full event returns ErrEventFull and
// leaves the list untouched.
func AddAttendee(list []Attendee, a Attendee, maxParticipants int) ([]Attendee, bool, error) {
	for _, existing := range list {
		if existing.UserID == a.UserID {
			return list, false, nil
		}
	}
	if maxParticipants > 0 && len(list) >= maxParticipants {
		return list, false, ErrEventFull
	}
	return append(list, a), true, nil
}

// RemoveAttendee drops the snapshot for userID. Leaving an event you never
// joined is a no-op (removed=false).
func RemoveAttendee(list []Attendee, userID uint) ([]Attendee, bool) {
	for i, a := range list {
		if a.UserID == userID {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

// ToDiscovery projects the stored event into the discovery pipeline's
// input shape. Missing coordinates become NaN.
func (e *Event) ToDiscovery() discovery.Event {
	lat, lng := math.NaN(), math.NaN()
	if e.Lat != nil {
		lat = *e.Lat
	}
	if e.Lng != nil {
		lng = *e.Lng
	}

	attendees, _ := e.AttendeeList()

	return discovery.Event{
		ID:            e.ID,
		Title:         e.Title,
		Category:      e.Category,
		StartTime:     e.StartTime,
		CreatedAt:     e.CreatedAt,
		Lat:           lat,
		Lng:           lng,
		MinAge:        e.MinAge,
		Price:         e.Price,
		AttendeeCount: len(attendees),
	}
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	StartTime      string   `json:"start_time" binding:"required"` // 🛠 RFC3339
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	LocationName   string   `json:"location_name"`
	Category       string   `json:"category" binding:"required"`
	CustomCategory string   `json:"custom_category,omitempty"`

	MinParticipants int `json:"min_participants"`
	MaxParticipants int `json:"max_participants"`
	MinAge          int `json:"min_age"`
	MaxAge          int `json:"max_age"`

	AgeCategory string `json:"age_category,omitempty"`
	Price       int    `json:"price"`
}

// ============================
// 🟠 Update Event Request: the whole document is replaced, last writer
// wins; there is no version token.
type UpdateEventRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	StartTime      string   `json:"start_time" binding:"required"` // 🛠 RFC3339
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	LocationName   string   `json:"location_name"`
	Category       string   `json:"category" binding:"required"`
	CustomCategory string   `json:"custom_category,omitempty"`

	MinParticipants int `json:"min_participants"`
	MaxParticipants int `json:"max_participants"`
	MinAge          int `json:"min_age"`
	MaxAge          int `json:"max_age"`

	AgeCategory string `json:"age_category,omitempty"`
	Price       int    `json:"price"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// DiscoveredEvent is the discover endpoint's response item: the stored
// document plus the per-request distance. DistanceKm is null when the
// event has no position.
type DiscoveredEvent struct {
	Event      Event    `json:"event"`
	DistanceKm *float64 `json:"distance_km"`
}
