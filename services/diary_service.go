package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-diary/cache"
	"github.com/yeremiapane/restaurant-diary/diary"
	"github.com/yeremiapane/restaurant-diary/live"
	"github.com/yeremiapane/restaurant-diary/models"
	"github.com/yeremiapane/restaurant-diary/repository"
	"github.com/yeremiapane/restaurant-diary/utils"
)

var (
	ErrUnknownTable    = errors.New("unknown table")
	ErrInvalidTracking = errors.New("invalid tracking label")
	ErrTrackingFinal   = errors.New("tracking cannot advance further")
)

// Broadcaster is the part of live.Hub the services publish through.
type Broadcaster interface {
	Broadcast(msg live.Message)
}

type DiaryService struct {
	Repo  repository.BookingRepository
	Cache cache.LayoutCache
	Hub   Broadcaster
}

func NewDiaryService(repo repository.BookingRepository, layoutCache cache.LayoutCache, hub Broadcaster) *DiaryService {
	if layoutCache == nil {
		layoutCache = cache.NewMemoryCache()
	}
	return &DiaryService{Repo: repo, Cache: layoutCache, Hub: hub}
}

func (s *DiaryService) broadcast(msg live.Message) {
	if s.Hub != nil {
		s.Hub.Broadcast(msg)
	}
}

// Snapshot reads everything the layout of date depends on.
func (s *DiaryService) Snapshot(ctx context.Context, date string) (diary.Snapshot, error) {
	bookings, err := s.Repo.FetchBookings(ctx, date)
	if err != nil {
		return diary.Snapshot{}, err
	}
	tables, err := s.Repo.FetchTables(ctx)
	if err != nil {
		return diary.Snapshot{}, err
	}
	settings, err := s.Repo.FetchBookingSettings(ctx)
	if err != nil {
		return diary.Snapshot{}, err
	}
	types, statuses, err := s.Repo.FetchCatalogs(ctx)
	if err != nil {
		return diary.Snapshot{}, err
	}
	return diary.Snapshot{
		Date:     date,
		Bookings: bookings,
		Tables:   tables,
		Settings: settings,
		Types:    types,
		Statuses: statuses,
	}, nil
}

func fingerprint(snap diary.Snapshot) string {
	raw, err := json.Marshal(snap)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Layout returns the diary grid for date, reusing the cached layout while
// none of its inputs changed.
func (s *DiaryService) Layout(ctx context.Context, date string) (*diary.Layout, error) {
	snap, err := s.Snapshot(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load diary %s: %w", date, err)
	}
	return s.layoutOf(ctx, snap), nil
}

func (s *DiaryService) layoutOf(ctx context.Context, snap diary.Snapshot) *diary.Layout {
	fp := fingerprint(snap)
	if fp != "" {
		if layout, ok := s.Cache.Get(ctx, snap.Date, fp); ok {
			return layout
		}
	}
	layout := diary.Build(snap)
	if fp != "" {
		s.Cache.Set(ctx, snap.Date, fp, layout)
	}
	return layout
}

// Slots returns the time columns for date at the given granularity, widened
// to cover every booking's arrival.
func (s *DiaryService) Slots(ctx context.Context, date string, granularity int) ([]string, error) {
	settings, err := s.Repo.FetchBookingSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load booking settings: %w", err)
	}
	bookings, err := s.Repo.FetchBookings(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load bookings %s: %w", date, err)
	}

	hours := settings.BusinessHours
	weekday, ok := diary.Weekday(date)
	if !ok {
		hours = nil
	}
	arrivals := make([]string, 0, len(bookings))
	for _, b := range bookings {
		arrivals = append(arrivals, b.ArrivalTime)
	}
	base := diary.GenerateSlots(hours, weekday, granularity)
	return diary.ExtendSlots(base, arrivals, granularity, diary.ServiceStart(hours, weekday)), nil
}

type ReassignCommand struct {
	BookingID string
	TableIDs  []string
}

type ReassignResult struct {
	Booking  models.Booking `json:"booking"`
	Previous []string       `json:"previous_tables"`
	Layout   *diary.Layout  `json:"layout"`
	Reverted bool           `json:"reverted"`
}

func reassignFields(tableIDs []string) map[string]interface{} {
	first := ""
	if len(tableIDs) > 0 {
		first = tableIDs[0]
	}
	return map[string]interface{}{
		"table_id":        first,
		"table_number":    "",
		"selected_tables": models.TablesJSON(tableIDs),
	}
}

func previousTables(b models.Booking) []string {
	if ids := b.Tables(); len(ids) > 0 {
		return ids
	}
	if b.TableID != "" {
		return []string{b.TableID}
	}
	if b.TableNumber != "" {
		return []string{b.TableNumber}
	}
	return []string{}
}

// ReassignTable moves a booking to other tables. Subscribers see the new
// layout before the write lands; if the write fails they get the previous
// layout back, a notification is stored and the result reports Reverted.
func (s *DiaryService) ReassignTable(ctx context.Context, cmd ReassignCommand) (ReassignResult, error) {
	current, err := s.Repo.GetBooking(ctx, cmd.BookingID)
	if err != nil {
		return ReassignResult{}, err
	}

	snap, err := s.Snapshot(ctx, current.Date)
	if err != nil {
		return ReassignResult{}, fmt.Errorf("load diary %s: %w", current.Date, err)
	}
	known := make(map[string]bool, len(snap.Tables))
	for _, t := range snap.Tables {
		known[t.ID] = true
	}
	tableIDs := make([]string, 0, len(cmd.TableIDs))
	seen := make(map[string]bool, len(cmd.TableIDs))
	for _, id := range cmd.TableIDs {
		if !known[id] {
			return ReassignResult{}, fmt.Errorf("%w: %s", ErrUnknownTable, id)
		}
		if !seen[id] {
			seen[id] = true
			tableIDs = append(tableIDs, id)
		}
	}

	before := s.layoutOf(ctx, snap)

	moved := current
	moved.TableID = ""
	moved.TableNumber = ""
	if len(tableIDs) > 0 {
		moved.TableID = tableIDs[0]
	}
	moved.SetTables(tableIDs)

	optimistic := snap
	optimistic.Bookings = make([]models.Booking, len(snap.Bookings))
	for i, b := range snap.Bookings {
		if b.ID == moved.ID {
			b = moved
		}
		optimistic.Bookings[i] = b
	}
	after := diary.Build(optimistic)

	s.broadcast(live.Message{
		Event: live.EventBookingReassigned,
		Date:  current.Date,
		Data:  map[string]interface{}{"booking_id": moved.ID, "tables": tableIDs, "layout": after},
	})

	result := ReassignResult{Booking: moved, Previous: previousTables(current), Layout: after}

	if err := s.Repo.UpdateBooking(ctx, moved.ID, reassignFields(tableIDs)); err != nil {
		utils.ErrorLogger.Errorf("Reassign booking %s failed, reverting: %v", moved.ID, err)

		s.broadcast(live.Message{
			Event: live.EventReassignReverted,
			Date:  current.Date,
			Data:  map[string]interface{}{"booking_id": moved.ID, "tables": result.Previous, "layout": before},
		})

		notif := &models.Notification{
			Title:     "Table reassignment failed",
			Message:   fmt.Sprintf("Booking %s could not be moved and was returned to its previous table: %v", moved.ID, err),
			Level:     "error",
			BookingID: moved.ID,
		}
		if nerr := s.Repo.CreateNotification(ctx, notif); nerr != nil {
			utils.ErrorLogger.Errorf("Error storing notification for booking %s: %v", moved.ID, nerr)
		} else {
			s.broadcast(live.Message{Event: live.EventNotification, Data: notif})
		}

		result.Booking = current
		result.Layout = before
		result.Reverted = true
		return result, fmt.Errorf("reassign booking %s: %w", moved.ID, err)
	}

	s.Cache.InvalidateDate(ctx, current.Date)
	utils.InfoLogger.Printf("Booking %s moved to tables %v", moved.ID, tableIDs)
	return result, nil
}

// UpdateTracking sets the tracking label, or advances it one step when label is empty.
func (s *DiaryService) UpdateTracking(ctx context.Context, bookingID, label string) (models.Booking, error) {
	b, err := s.Repo.GetBooking(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	next := label
	if next == "" {
		var ok bool
		next, ok = diary.NextTracking(b.Tracking)
		if !ok {
			return models.Booking{}, fmt.Errorf("%w: %s", ErrTrackingFinal, b.Tracking)
		}
	} else if !diary.ValidTracking(next) {
		return models.Booking{}, fmt.Errorf("%w: %q", ErrInvalidTracking, next)
	}

	return s.writeField(ctx, b, "tracking", next)
}

// SetStatus stores the status by catalog id when the reference names a known status.
func (s *DiaryService) SetStatus(ctx context.Context, bookingID, status string) (models.Booking, error) {
	b, err := s.Repo.GetBooking(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	_, statuses, err := s.Repo.FetchCatalogs(ctx)
	if err != nil {
		return models.Booking{}, fmt.Errorf("load booking statuses: %w", err)
	}
	return s.writeField(ctx, b, "status", diary.NewStatusCatalog(statuses).Canonical(status))
}

func (s *DiaryService) writeField(ctx context.Context, b models.Booking, field, value string) (models.Booking, error) {
	if err := s.Repo.UpdateBooking(ctx, b.ID, map[string]interface{}{field: value}); err != nil {
		return models.Booking{}, fmt.Errorf("update %s of booking %s: %w", field, b.ID, err)
	}
	updated, err := s.Repo.GetBooking(ctx, b.ID)
	if err != nil {
		return models.Booking{}, err
	}
	s.Cache.InvalidateDate(ctx, b.Date)
	s.broadcast(live.Message{Event: live.EventBookingUpdate, Date: b.Date, Data: updated})
	return updated, nil
}
