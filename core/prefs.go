package core

import "encoding/json"

// PreferenceKey is the single local-storage key under which the serialized
// filter preferences live.
const PreferenceKey = "user_task_filter_preferences"

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortPriorityDesc SortKey = "prioridad_desc"
	SortPriorityAsc  SortKey = "prioridad_asc"
	SortDateDesc     SortKey = "fecha_desc"
	SortDateAsc      SortKey = "fecha_asc"
	SortStatusAsc    SortKey = "estado_asc"
	SortStatusDesc   SortKey = "estado_desc"
)

// AssignmentFilter narrows tasks by assignee relative to the acting user.
// The zero value means no assignment filtering.
type AssignmentFilter string

const (
	AssignmentAll    AssignmentFilter = ""
	AssignmentMine   AssignmentFilter = "mias"
	AssignmentOthers AssignmentFilter = "otros"
)

// FilterPreferences is a user's saved task-view configuration.
// Empty slices mean "no filter" for that dimension.
type FilterPreferences struct {
	Status     []TaskStatus
	Priority   []TaskPriority
	Type       TaskType
	Assignment AssignmentFilter
	SortBy     SortKey
}

// DefaultPreferences returns the initial view configuration:
// no filters, sorted by priority descending.
func DefaultPreferences() FilterPreferences {
	return FilterPreferences{SortBy: SortPriorityDesc}
}

// preferencesDoc is the persisted wire format. Key names are kept stable
// so existing saved documents keep loading across releases.
type preferencesDoc struct {
	Filters filtersDoc `json:"savedFilters"`
	SortBy  SortKey    `json:"savedSortBy"`
}

type filtersDoc struct {
	Status     []TaskStatus     `json:"status"`
	Priority   []TaskPriority   `json:"priority"`
	Type       TaskType         `json:"type,omitempty"`
	Assignment AssignmentFilter `json:"assignment,omitempty"`
}

// EncodePreferences serializes the full preference object for storage.
func EncodePreferences(p FilterPreferences) ([]byte, error) {
	doc := preferencesDoc{
		Filters: filtersDoc{
			Status:     p.Status,
			Priority:   p.Priority,
			Type:       p.Type,
			Assignment: p.Assignment,
		},
		SortBy: p.SortBy,
	}
	return json.Marshal(doc)
}

// DecodePreferences deserializes a stored preference document.
// An absent sort key falls back to the default ordering.
func DecodePreferences(data []byte) (FilterPreferences, error) {
	var doc preferencesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return FilterPreferences{}, err
	}
	p := FilterPreferences{
		Status:     doc.Filters.Status,
		Priority:   doc.Filters.Priority,
		Type:       doc.Filters.Type,
		Assignment: doc.Filters.Assignment,
		SortBy:     doc.SortBy,
	}
	if p.SortBy == "" {
		p.SortBy = SortPriorityDesc
	}
	return p, nil
}
