package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/vadkul/vadkul-backend/internal/auditlog"
	"github.com/vadkul/vadkul-backend/internal/auth"
	"github.com/vadkul/vadkul-backend/internal/discovery"
	"github.com/vadkul/vadkul-backend/internal/profile"
	"github.com/vadkul/vadkul-backend/utils"
)

// Service wraps business logic for events: creation, the host's edits,
// join/leave and the discovery endpoint.
type Service struct {
	Repo       *Repository
	Users      auth.Repository
	ProfileSvc *profile.Service
	AuditSvc   auditlog.Service
}

// NewService initializes a new Service with audit logging
func NewService(r *Repository, users auth.Repository, profileSvc *profile.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:       r,
		Users:      users,
		ProfileSvc: profileSvc,
		AuditSvc:   auditSvc,
	}
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(req *CreateEventRequest, hostUserID uint, ip string) (*Event, error) {
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&hostUserID,
			nil,
			"EVENT_CREATED",
			map[string]interface{}{
				"title":      req.Title,
				"error":      "invalid start_time format",
				"start_time": req.StartTime,
			},
			ip,
			"failure",
		)
		return nil, errors.New("invalid start_time format. Use RFC3339")
	}

	if err := validateEventFields(req.Price, req.MinParticipants, req.MaxParticipants, req.MinAge, req.MaxAge); err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&hostUserID,
			nil,
			"EVENT_CREATED",
			map[string]interface{}{
				"title": req.Title,
				"error": err.Error(),
			},
			ip,
			"failure",
		)
		return nil, err
	}

	// Snapshot the host's profile at write time. The copy is intentional:
	// event cards keep showing what the host looked like when they
	// published, even after profile edits.
	host, err := s.hostSnapshot(hostUserID)
	if err != nil {
		return nil, err
	}
	hostJSON, err := json.Marshal(host)
	if err != nil {
		return nil, err
	}

	event := &Event{
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       startTime,
		Lat:             req.Lat,
		Lng:             req.Lng,
		LocationName:    req.LocationName,
		Category:        req.Category,
		CustomCategory:  req.CustomCategory,
		MinParticipants: req.MinParticipants,
		MaxParticipants: req.MaxParticipants,
		MinAge:          req.MinAge,
		MaxAge:          req.MaxAge,
		AgeCategory:     req.AgeCategory,
		Price:           req.Price,
		HostUserID:      hostUserID,
		Host:            datatypes.JSON(hostJSON),
		Attendees:       datatypes.JSON([]byte("[]")),
		IsActive:        true,
	}

	if err := s.Repo.CreateEvent(event); err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&hostUserID,
			nil,
			"EVENT_CREATED",
			map[string]interface{}{
				"title": req.Title,
				"error": err.Error(),
			},
			ip,
			"failure",
		)
		return nil, err
	}

	s.AuditSvc.LogAction(
		context.Background(),
		&hostUserID,
		&event.ID,
		"EVENT_CREATED",
		map[string]interface{}{
			"event_id": event.ID,
			"title":    event.Title,
			"category": event.Category,
			"price":    event.Price,
		},
		ip,
		"success",
	)

	return event, nil
}

// ===========================
// 🔍 Get Event by ID
func (s *Service) GetEventByID(id uint) (*Event, error) {
	return s.Repo.GetEventByID(id)
}

// ===========================
// 📄 List Events with Pagination & Search
func (s *Service) ListEvents(limit, offset int, search string) ([]Event, error) {
	return s.Repo.ListEvents(limit, offset, search)
}

// ===========================
// 📄 List Events Hosted by the Caller
func (s *Service) ListMyEvents(hostUserID uint) ([]Event, error) {
	return s.Repo.ListEventsByHost(hostUserID)
}

// ===========================
// 🛠 Update Event: host only, whole document replaced, last writer wins.
// Host snapshot and attendee list survive the overwrite untouched.
func (s *Service) UpdateEvent(id uint, req *UpdateEventRequest, userID uint, ip string) (*Event, error) {
	event, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, errors.New("event not found")
	}

	if event.HostUserID != userID {
		s.AuditSvc.LogAction(
			context.Background(),
			&userID,
			&id,
			"EVENT_UPDATED",
			map[string]interface{}{
				"event_id": id,
				"error":    "not the host",
			},
			ip,
			"failure",
		)
		return nil, errors.New("only the host can update this event")
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.New("invalid start_time format. Use RFC3339")
	}

	if err := validateEventFields(req.Price, req.MinParticipants, req.MaxParticipants, req.MinAge, req.MaxAge); err != nil {
		return nil, err
	}

	originalTitle := event.Title

	event.Title = req.Title
	event.Description = req.Description
	event.StartTime = startTime
	event.Lat = req.Lat
	event.Lng = req.Lng
	event.LocationName = req.LocationName
	event.Category = req.Category
	event.CustomCategory = req.CustomCategory
	event.MinParticipants = req.MinParticipants
	event.MaxParticipants = req.MaxParticipants
	event.MinAge = req.MinAge
	event.MaxAge = req.MaxAge
	event.AgeCategory = req.AgeCategory
	event.Price = req.Price
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}

	if err := s.Repo.UpdateEvent(event); err != nil {
		s.AuditSvc.LogAction(
			context.Background(),
			&userID,
			&id,
			"EVENT_UPDATED",
			map[string]interface{}{
				"event_id":    id,
				"event_title": originalTitle,
				"error":       err.Error(),
			},
			ip,
			"failure",
		)
		return nil, err
	}

	changes := map[string]interface{}{}
	if originalTitle != event.Title {
		changes["title_changed"] = map[string]string{"from": originalTitle, "to": event.Title}
	}

	s.AuditSvc.LogAction(
		context.Background(),
		&userID,
		&id,
		"EVENT_UPDATED",
		map[string]interface{}{
			"event_id":    event.ID,
			"event_title": event.Title,
			"changes":     changes,
		},
		ip,
		"success",
	)

	return event, nil
}

// ===========================
// 🤝 Join Event
func (s *Service) JoinEvent(ctx context.Context, eventID uint, userID uint, ip string) (*Event, error) {
	attendee, err := s.attendeeSnapshot(userID)
	if err != nil {
		return nil, err
	}

	event, added, err := s.Repo.Join(ctx, eventID, attendee)
	if err != nil {
		status := "failure"
		details := map[string]interface{}{
			"event_id": eventID,
			"error":    err.Error(),
		}
		s.AuditSvc.LogAction(ctx, &userID, &eventID, "EVENT_JOINED", details, ip, status)
		return nil, err
	}

	// Joining twice is a quiet success: no new snapshot, no activity
	if !added {
		return event, nil
	}

	s.AuditSvc.LogAction(
		ctx,
		&userID,
		&eventID,
		"EVENT_JOINED",
		map[string]interface{}{
			"event_id":    event.ID,
			"event_title": event.Title,
		},
		ip,
		"success",
	)

	utils.PublishActivity(fmt.Sprintf("event:%d", event.ID), utils.Activity{
		Type:        "join",
		EventID:     event.ID,
		EventTitle:  event.Title,
		ActorID:     userID,
		ActorName:   attendee.Name,
		ActorPhoto:  attendee.PhotoURL,
		RecipientID: event.HostUserID,
	})

	return event, nil
}

// ===========================
// 👋 Leave Event
func (s *Service) LeaveEvent(ctx context.Context, eventID uint, userID uint, ip string) (*Event, error) {
	attendee, err := s.attendeeSnapshot(userID)
	if err != nil {
		return nil, err
	}

	event, removed, err := s.Repo.Leave(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	if !removed {
		return event, nil
	}

	s.AuditSvc.LogAction(
		ctx,
		&userID,
		&eventID,
		"EVENT_LEFT",
		map[string]interface{}{
			"event_id":    event.ID,
			"event_title": event.Title,
		},
		ip,
		"success",
	)

	utils.PublishActivity(fmt.Sprintf("event:%d", event.ID), utils.Activity{
		Type:        "leave",
		EventID:     event.ID,
		EventTitle:  event.Title,
		ActorID:     userID,
		ActorName:   attendee.Name,
		ActorPhoto:  attendee.PhotoURL,
		RecipientID: event.HostUserID,
	})

	return event, nil
}

// ===========================
// 🧭 Discover loads the whole active collection and runs the pipeline
// over it. Distances are computed per request and never persisted.
func (s *Service) Discover(userLat, userLng float64, f discovery.Filters, key discovery.SortKey) ([]DiscoveredEvent, error) {
	stored, err := s.Repo.ListAllActive()
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*Event, len(stored))
	input := make([]discovery.Event, 0, len(stored))
	for i := range stored {
		byID[stored[i].ID] = &stored[i]
		input = append(input, stored[i].ToDiscovery())
	}

	ranked := discovery.Discover(input, userLat, userLng, f, key)

	result := make([]DiscoveredEvent, 0, len(ranked))
	for _, r := range ranked {
		item := DiscoveredEvent{Event: *byID[r.ID]}
		if r.HasDistance() {
			d := r.DistanceKm
			item.DistanceKm = &d
		}
		result = append(result, item)
	}
	return result, nil
}

// ===========================
// helpers

func validateEventFields(price, minParticipants, maxParticipants, minAge, maxAge int) error {
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	if minParticipants < 0 || maxParticipants < 0 {
		return errors.New("participant limits cannot be negative")
	}
	if maxParticipants > 0 && minParticipants > maxParticipants {
		return errors.New("min_participants cannot exceed max_participants")
	}
	if minAge < 0 || maxAge < 0 {
		return errors.New("age limits cannot be negative")
	}
	if maxAge > 0 && minAge > maxAge {
		return errors.New("min_age cannot exceed max_age")
	}
	return nil
}

func (s *Service) hostSnapshot(userID uint) (*HostSnapshot, error) {
	p, err := s.ProfileSvc.GetProfile(userID)
	if err != nil {
		return nil, errors.New("host profile not found")
	}
	return &HostSnapshot{
		UserID:   userID,
		Name:     p.DisplayName,
		Rating:   p.Rating,
		Verified: p.VerificationStatus == profile.VerificationVerified,
		PhotoURL: p.PhotoURL,
	}, nil
}

func (s *Service) attendeeSnapshot(userID uint) (Attendee, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return Attendee{}, errors.New("user not found")
	}

	a := Attendee{
		UserID: userID,
		Email:  user.Email,
		Name:   user.FullName,
	}

	// Prefer the profile's display name and photo when a profile exists
	if p, err := s.ProfileSvc.GetProfile(userID); err == nil {
		if p.DisplayName != "" {
			a.Name = p.DisplayName
		}
		a.PhotoURL = p.PhotoURL
	}

	return a, nil
}
