package api

import (
	"context"
	"net/url"

	"github.com/hotelmanager/staffkit/core"
)

// NotesAPI covers personal, team and general notes.
type NotesAPI struct {
	client *Client
}

type ListNotesParams struct {
	Type  core.NoteType
	Page  int
	Limit int
}

func (p ListNotesParams) values() url.Values {
	q := url.Values{}
	if p.Type != "" {
		q.Set("tipo", string(p.Type))
	}
	addPaging(q, p.Page, p.Limit)
	return q
}

type CreateNoteRequest struct {
	Content string        `json:"contenido"`
	Type    core.NoteType `json:"tipo"`
}

type UpdateNoteRequest struct {
	Content *string        `json:"contenido,omitempty"`
	Type    *core.NoteType `json:"tipo,omitempty"`
}

func (n *NotesAPI) List(ctx context.Context, params ListNotesParams) ([]core.Note, *core.Pagination, error) {
	var notes []core.Note
	page, err := n.client.get(ctx, "/notes", params.values(), &notes)
	if err != nil {
		return nil, nil, err
	}
	return notes, page, nil
}

func (n *NotesAPI) Stats(ctx context.Context) (*core.NoteStats, error) {
	var stats core.NoteStats
	if _, err := n.client.get(ctx, "/notes/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (n *NotesAPI) Create(ctx context.Context, req CreateNoteRequest) (*core.Note, error) {
	var note core.Note
	if err := n.client.post(ctx, "/notes", req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (n *NotesAPI) Update(ctx context.Context, id string, req UpdateNoteRequest) (*core.Note, error) {
	var note core.Note
	if err := n.client.put(ctx, "/notes/"+url.PathEscape(id), req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (n *NotesAPI) Delete(ctx context.Context, id string) error {
	return n.client.delete(ctx, "/notes/"+url.PathEscape(id))
}
