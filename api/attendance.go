package api

import (
	"context"
	"net/url"
	"time"

	"github.com/hotelmanager/staffkit/core"
)

// AttendanceAPI covers shift check-in/check-out and attendance history.
type AttendanceAPI struct {
	client *Client
}

type attendanceNotes struct {
	Notes string `json:"notas,omitempty"`
}

// AttendanceStatus is the caller's live shift state.
type AttendanceStatus struct {
	OnShift bool                   `json:"en_turno"`
	Record  *core.AttendanceRecord `json:"registro,omitempty"`
}

type ListAttendanceParams struct {
	UserID string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

func (p ListAttendanceParams) values() url.Values {
	q := url.Values{}
	if p.UserID != "" {
		q.Set("usuario_id", p.UserID)
	}
	if !p.From.IsZero() {
		q.Set("desde", p.From.Format(time.RFC3339))
	}
	if !p.To.IsZero() {
		q.Set("hasta", p.To.Format(time.RFC3339))
	}
	addPaging(q, p.Page, p.Limit)
	return q
}

// CheckIn opens a shift. notes may be empty.
func (a *AttendanceAPI) CheckIn(ctx context.Context, notes string) (*core.AttendanceRecord, error) {
	var record core.AttendanceRecord
	if err := a.client.post(ctx, "/attendance/check-in", attendanceNotes{Notes: notes}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CheckOut closes the open shift.
func (a *AttendanceAPI) CheckOut(ctx context.Context, notes string) (*core.AttendanceRecord, error) {
	var record core.AttendanceRecord
	if err := a.client.post(ctx, "/attendance/check-out", attendanceNotes{Notes: notes}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (a *AttendanceAPI) List(ctx context.Context, params ListAttendanceParams) ([]core.AttendanceRecord, *core.Pagination, error) {
	var records []core.AttendanceRecord
	page, err := a.client.get(ctx, "/attendance", params.values(), &records)
	if err != nil {
		return nil, nil, err
	}
	return records, page, nil
}

func (a *AttendanceAPI) CurrentStatus(ctx context.Context) (*AttendanceStatus, error) {
	var status AttendanceStatus
	if _, err := a.client.get(ctx, "/attendance/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (a *AttendanceAPI) Stats(ctx context.Context) (*core.AttendanceStats, error) {
	var stats core.AttendanceStats
	if _, err := a.client.get(ctx, "/attendance/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
