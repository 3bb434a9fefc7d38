package core

import "time"

// Wire values are the backend's Spanish identifiers.

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pendiente"
	TaskStatusInProgress TaskStatus = "en_progreso"
	TaskStatusCompleted  TaskStatus = "completada"
	TaskStatusCancelled  TaskStatus = "cancelada"
)

// Ordinal returns the sort rank for status orderings.
// Unknown values (including cancelada) rank 0.
func (s TaskStatus) Ordinal() int {
	switch s {
	case TaskStatusPending:
		return 1
	case TaskStatusInProgress:
		return 2
	case TaskStatusCompleted:
		return 3
	default:
		return 0
	}
}

// DisplayName returns the user-facing label for a status.
func (s TaskStatus) DisplayName() string {
	switch s {
	case TaskStatusPending:
		return "Pendiente"
	case TaskStatusInProgress:
		return "En Progreso"
	case TaskStatusCompleted:
		return "Completada"
	case TaskStatusCancelled:
		return "Cancelada"
	default:
		return string(s)
	}
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "baja"
	TaskPriorityMedium TaskPriority = "media"
	TaskPriorityHigh   TaskPriority = "alta"
	TaskPriorityUrgent TaskPriority = "urgente"
)

// Ordinal returns the sort rank for priority orderings. Unknown values rank 0.
func (p TaskPriority) Ordinal() int {
	switch p {
	case TaskPriorityLow:
		return 1
	case TaskPriorityMedium:
		return 2
	case TaskPriorityHigh:
		return 3
	case TaskPriorityUrgent:
		return 4
	default:
		return 0
	}
}

// DisplayName returns the user-facing label for a priority.
func (p TaskPriority) DisplayName() string {
	switch p {
	case TaskPriorityLow:
		return "Baja"
	case TaskPriorityMedium:
		return "Media"
	case TaskPriorityHigh:
		return "Alta"
	case TaskPriorityUrgent:
		return "Urgente"
	default:
		return string(p)
	}
}

// TaskType distinguishes personal tasks from general (shared) ones.
type TaskType string

const (
	TaskTypePersonal TaskType = "personal"
	TaskTypeGeneral  TaskType = "general"
)

// Task is a unit of work owned by the backend; the client only reads
// tasks and requests mutations through the API.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"titulo"`
	Description string       `json:"descripcion,omitempty"`
	Status      TaskStatus   `json:"estado"`
	Priority    TaskPriority `json:"prioridad"`
	Type        TaskType     `json:"tipo,omitempty"`
	AssignedTo  string       `json:"usuario_asignado"`
	CreatedAt   time.Time    `json:"fecha_creacion"`
}
