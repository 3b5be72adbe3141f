package report

import (
	"context"
	"log/slog"
	"sync"

	"github.com/relief-experts/attendance-backend-go/internal/domain/attendance"
	"github.com/relief-experts/attendance-backend-go/internal/domain/center"
	"github.com/relief-experts/attendance-backend-go/internal/domain/employee"
	"github.com/relief-experts/attendance-backend-go/internal/domain/holiday"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
)

// Snapshot is the in-memory state the reconstructor reads. It is
// primed from the store once and then kept current by change feed
// events, so report runs never hit the database.
type Snapshot struct {
	mu        sync.RWMutex
	records   map[string]attendance.Record
	employees map[string]employee.Employee
	centers   map[string]center.Center
	holidays  map[string]holiday.Holiday // keyed by date
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		records:   make(map[string]attendance.Record),
		employees: make(map[string]employee.Employee),
		centers:   make(map[string]center.Center),
		holidays:  make(map[string]holiday.Holiday),
	}
}

// Prime loads the current store state into the snapshot.
func (s *Snapshot) Prime(
	ctx context.Context,
	records attendance.Repository,
	employees employee.Repository,
	centers center.Repository,
	holidays holiday.Repository,
) error {
	allRecords, err := records.List(ctx, attendance.Filter{})
	if err != nil {
		return err
	}
	allEmployees, err := employees.List(ctx, false)
	if err != nil {
		return err
	}
	allCenters, err := centers.List(ctx, false)
	if err != nil {
		return err
	}
	allHolidays, err := holidays.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range allRecords {
		s.records[r.ID] = r
	}
	for _, e := range allEmployees {
		s.employees[e.ID] = e
	}
	for _, c := range allCenters {
		s.centers[c.ID] = c
	}
	for _, h := range allHolidays {
		s.holidays[h.Date] = h
	}
	return nil
}

// Watch applies change feed events until ctx is cancelled.
func (s *Snapshot) Watch(ctx context.Context, feed *changefeed.Hub) {
	tables := []string{"attendance_records", "employees", "centers", "holidays"}
	for _, table := range tables {
		events, cancel := feed.Subscribe(table)
		go func(table string, events chan changefeed.Event, cancel func()) {
			defer cancel()
			for {
				select {
				case <-ctx.Done():
					return
				case event := <-events:
					s.apply(event)
				}
			}
		}(table, events, cancel)
	}
	slog.Info("Report snapshot watching change feed", "tables", tables)
}

func (s *Snapshot) apply(event changefeed.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch record := event.Record.(type) {
	case attendance.Record:
		if event.Op == changefeed.OpDeleted {
			delete(s.records, record.ID)
			return
		}
		s.records[record.ID] = record
	case employee.Employee:
		if event.Op == changefeed.OpDeleted {
			delete(s.employees, record.ID)
			return
		}
		// Device binding events carry only the id and device fields;
		// merge them into the full copy.
		if existing, ok := s.employees[record.ID]; ok && record.Code == "" {
			existing.DeviceID = record.DeviceID
			record = existing
		}
		s.employees[record.ID] = record
	case center.Center:
		if event.Op == changefeed.OpDeleted {
			delete(s.centers, record.ID)
			return
		}
		s.centers[record.ID] = record
	case holiday.Holiday:
		if event.Op == changefeed.OpDeleted {
			for date, h := range s.holidays {
				if h.ID == record.ID {
					delete(s.holidays, date)
				}
			}
			return
		}
		s.holidays[record.Date] = record
	}
}

// view returns copies for a consistent read.
func (s *Snapshot) view() (map[string]attendance.Record, map[string]employee.Employee, map[string]center.Center, map[string]holiday.Holiday) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make(map[string]attendance.Record, len(s.records))
	for k, v := range s.records {
		records[k] = v
	}
	employees := make(map[string]employee.Employee, len(s.employees))
	for k, v := range s.employees {
		employees[k] = v
	}
	centers := make(map[string]center.Center, len(s.centers))
	for k, v := range s.centers {
		centers[k] = v
	}
	holidays := make(map[string]holiday.Holiday, len(s.holidays))
	for k, v := range s.holidays {
		holidays[k] = v
	}
	return records, employees, centers, holidays
}
