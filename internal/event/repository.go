package event

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID
func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	err := r.DB.First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 📄 List Events With Pagination & Search
func (r *Repository) ListEvents(limit, offset int, search string) ([]Event, error) {
	var events []Event

	query := r.DB.Where("is_active = TRUE")

	if search != "" {
		ilike := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", ilike, ilike)
	}

	err := query.
		Order("start_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error

	return events, err
}

// ===========================
// 🗺 List All Active: discovery pipeline input, whole collection
func (r *Repository) ListAllActive() ([]Event, error) {
	var events []Event
	err := r.DB.Where("is_active = TRUE").Find(&events).Error
	return events, err
}

// ===========================
// 📄 List Events Hosted By a User
func (r *Repository) ListEventsByHost(hostUserID uint) ([]Event, error) {
	var events []Event
	err := r.DB.
		Where("host_user_id = ?", hostUserID).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// ❌ Delete Events (admin bulk delete is the only delete path)
func (r *Repository) DeleteEvents(ids []uint) (int64, error) {
	res := r.DB.Where("id IN ?", ids).Delete(&Event{})
	return res.RowsAffected, res.Error
}

// ===========================
// 🤝 Join: the capacity check and the write happen under a row lock so
// two concurrent joins cannot both squeeze into the last seat.
func (r *Repository) Join(ctx context.Context, eventID uint, a Attendee) (*Event, bool, error) {
	var e Event
	added := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&e, eventID).Error; err != nil {
			return err
		}

		list, err := e.AttendeeList()
		if err != nil {
			return err
		}

		updated, didAdd, err := AddAttendee(list, a, e.MaxParticipants)
		if err != nil {
			return err
		}
		if !didAdd {
			return nil
		}

		if err := e.SetAttendees(updated); err != nil {
			return err
		}
		added = true
		return tx.Save(&e).Error
	})

	if err != nil {
		return nil, false, err
	}
	return &e, added, nil
}

// ===========================
// 👋 Leave
func (r *Repository) Leave(ctx context.Context, eventID uint, userID uint) (*Event, bool, error) {
	var e Event
	removed := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&e, eventID).Error; err != nil {
			return err
		}

		list, err := e.AttendeeList()
		if err != nil {
			return err
		}

		updated, didRemove := RemoveAttendee(list, userID)
		if !didRemove {
			return nil
		}

		if err := e.SetAttendees(updated); err != nil {
			return err
		}
		removed = true
		return tx.Save(&e).Error
	})

	if err != nil {
		return nil, false, err
	}
	return &e, removed, nil
}

// ===========================
// 🔢 Count Events
func (r *Repository) CountEvents() (int64, error) {
	var count int64
	err := r.DB.Model(&Event{}).Count(&count).Error
	return count, err
}

// ===========================
// 🔢 Count Joins: total attendee snapshots across all events
func (r *Repository) CountJoins() (int64, error) {
	var count int64
	err := r.DB.Model(&Event{}).
		Select("COALESCE(SUM(jsonb_array_length(COALESCE(attendees, '[]'::jsonb))), 0)").
		Scan(&count).Error
	return count, err
}
