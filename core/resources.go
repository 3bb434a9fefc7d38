package core

import "time"

// REST resources the client reads and mutates. Field names follow the
// backend's wire format.

type NoteType string

const (
	NoteTypePersonal NoteType = "personal"
	NoteTypeTeam     NoteType = "equipo"
	NoteTypeGeneral  NoteType = "general"
)

// DisplayName returns the user-facing label for a note type.
func (t NoteType) DisplayName() string {
	switch t {
	case NoteTypePersonal:
		return "Personal"
	case NoteTypeTeam:
		return "Equipo"
	case NoteTypeGeneral:
		return "General"
	default:
		return string(t)
	}
}

type ReportType string

const (
	ReportTypeIncident    ReportType = "incidente"
	ReportTypeImprovement ReportType = "mejora"
	ReportTypeMaintenance ReportType = "mantenimiento"
	ReportTypeGeneral     ReportType = "general"
)

// DisplayName returns the user-facing label for a report type.
func (t ReportType) DisplayName() string {
	switch t {
	case ReportTypeIncident:
		return "Incidente"
	case ReportTypeImprovement:
		return "Mejora"
	case ReportTypeMaintenance:
		return "Mantenimiento"
	case ReportTypeGeneral:
		return "General"
	default:
		return string(t)
	}
}

type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"contenido"`
	Type      NoteType  `json:"tipo"`
	CreatedBy string    `json:"creado_por"`
	CreatedAt time.Time `json:"fecha_creacion"`
}

type Report struct {
	ID          string     `json:"id"`
	Type        ReportType `json:"tipo"`
	Title       string     `json:"titulo"`
	Description string     `json:"descripcion,omitempty"`
	CreatedBy   string     `json:"creado_por"`
	CreatedAt   time.Time  `json:"fecha_creacion"`
}

// AttendanceRecord is one check-in/check-out pair. CheckOut is nil while
// the shift is open.
type AttendanceRecord struct {
	ID       string     `json:"id"`
	UserID   string     `json:"usuario_id"`
	CheckIn  time.Time  `json:"entrada"`
	CheckOut *time.Time `json:"salida,omitempty"`
	Notes    string     `json:"notas,omitempty"`
}

// User is the administration view of a staff member; Profile is the
// authenticated caller's own identity.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"nombre"`
	Role      Role      `json:"rol"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"fecha_creacion"`
}

type TaskStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pendientes"`
	InProgress int `json:"en_progreso"`
	Completed  int `json:"completadas"`
}

type UserStats struct {
	TasksAssigned  int `json:"tareas_asignadas"`
	TasksCompleted int `json:"tareas_completadas"`
	NotesCreated   int `json:"notas_creadas"`
}

type AttendanceStats struct {
	DaysWorked   int        `json:"dias_trabajados"`
	HoursWorked  float64    `json:"horas_trabajadas"`
	OpenShift    bool       `json:"turno_abierto"`
	LastCheckIn  *time.Time `json:"ultima_entrada,omitempty"`
	LastCheckOut *time.Time `json:"ultima_salida,omitempty"`
}

type NoteStats struct {
	Total    int `json:"total"`
	Personal int `json:"personales"`
	Team     int `json:"equipo"`
	General  int `json:"generales"`
}

// Pagination is the optional paging block of list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
