package activity

import (
	"fmt"
	"sort"
	"strings"

	"taskboard-api/internal/models"
	"taskboard-api/internal/repository"
)

// noneValue is the placeholder rendered for missing from/to values.
const noneValue = "None"

// FieldChange describes one edited field of a task.
type FieldChange struct {
	Field string `json:"field"`
	From  string `json:"from_value"`
	To    string `json:"to_value"`
}

// FormatFieldChanges renders changes as "field: 'from' to 'to'",
// comma-joined. Empty values are normalized to the literal "None",
// identically for every field.
func FormatFieldChanges(changes []FieldChange) string {
	if len(changes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(changes))
	for _, ch := range changes {
		from := ch.From
		if from == "" {
			from = noneValue
		}
		to := ch.To
		if to == "" {
			to = noneValue
		}
		field := ch.Field
		if field == "" {
			field = "undefined"
		}
		parts = append(parts, fmt.Sprintf("%s: '%s' to '%s'", field, from, to))
	}
	return strings.Join(parts, ", ")
}

// DiffOwners compares the owner username sets before and after a
// mutation. Reordering is not a change; adding or removing one is.
// The reported from/to values are sorted, comma-joined lists.
func DiffOwners(before, after []string) (FieldChange, bool) {
	if sameSet(before, after) {
		return FieldChange{}, false
	}
	return FieldChange{
		Field: "owner",
		From:  strings.Join(sortedCopy(before), ", "),
		To:    strings.Join(sortedCopy(after), ", "),
	}, true
}

func sameSet(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, s := range b {
		other[s] = struct{}{}
	}
	if len(set) != len(other) {
		return false
	}
	for s := range set {
		if _, ok := other[s]; !ok {
			return false
		}
	}
	return true
}

func sortedCopy(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}

// Logger turns task mutations into append-only audit trail entries.
type Logger struct {
	logs repository.ActivityLogRepository
}

// NewLogger creates a new Logger
func NewLogger(logs repository.ActivityLogRepository) *Logger {
	return &Logger{logs: logs}
}

// TaskCreated builds a "created" entry for a new task.
func (l *Logger) TaskCreated(userID, projectID uint, taskTitle string) *models.ActivityLog {
	return l.entry(userID, projectID, models.ActionCreated, taskTitle)
}

// TaskMoved builds a "moved" entry recording a status transition.
func (l *Logger) TaskMoved(userID, projectID uint, taskTitle string, from, to models.TaskStatus) *models.ActivityLog {
	e := l.entry(userID, projectID, models.ActionMoved, taskTitle)
	e.FromStatus = string(from)
	e.ToStatus = string(to)
	return e
}

// TaskEdited builds an "edited" entry listing the changed fields.
func (l *Logger) TaskEdited(userID, projectID uint, taskTitle string, changes []FieldChange) *models.ActivityLog {
	e := l.entry(userID, projectID, models.ActionEdited, taskTitle)
	e.EditedFields = FormatFieldChanges(changes)
	return e
}

// TaskDeleted builds a "deleted" entry.
func (l *Logger) TaskDeleted(userID, projectID uint, taskTitle string) *models.ActivityLog {
	return l.entry(userID, projectID, models.ActionDeleted, taskTitle)
}

// Record persists an entry outside of any entity transaction. Entries
// tied to a task mutation instead ride that mutation's transaction via
// the task repository.
func (l *Logger) Record(entry *models.ActivityLog) error {
	return l.logs.Create(entry)
}

func (l *Logger) entry(userID, projectID uint, action models.ActivityAction, taskTitle string) *models.ActivityLog {
	return &models.ActivityLog{
		UserID:    userID,
		ProjectID: projectID,
		Action:    action,
		TaskTitle: taskTitle,
	}
}
