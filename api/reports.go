package api

import (
	"context"
	"net/url"

	"github.com/hotelmanager/staffkit/core"
)

// ReportsAPI covers incident and maintenance reports. Reports are never
// deleted, only amended.
type ReportsAPI struct {
	client *Client
}

type ListReportsParams struct {
	Type  core.ReportType
	Page  int
	Limit int
}

func (p ListReportsParams) values() url.Values {
	q := url.Values{}
	if p.Type != "" {
		q.Set("tipo", string(p.Type))
	}
	addPaging(q, p.Page, p.Limit)
	return q
}

type CreateReportRequest struct {
	Type        core.ReportType `json:"tipo"`
	Title       string          `json:"titulo"`
	Description string          `json:"descripcion,omitempty"`
}

type UpdateReportRequest struct {
	Type        *core.ReportType `json:"tipo,omitempty"`
	Title       *string          `json:"titulo,omitempty"`
	Description *string          `json:"descripcion,omitempty"`
}

func (r *ReportsAPI) List(ctx context.Context, params ListReportsParams) ([]core.Report, *core.Pagination, error) {
	var reports []core.Report
	page, err := r.client.get(ctx, "/reports", params.values(), &reports)
	if err != nil {
		return nil, nil, err
	}
	return reports, page, nil
}

func (r *ReportsAPI) Create(ctx context.Context, req CreateReportRequest) (*core.Report, error) {
	var report core.Report
	if err := r.client.post(ctx, "/reports", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportsAPI) Update(ctx context.Context, id string, req UpdateReportRequest) (*core.Report, error) {
	var report core.Report
	if err := r.client.put(ctx, "/reports/"+url.PathEscape(id), req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
