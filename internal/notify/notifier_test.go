package notify

import (
	"encoding/json"
	"testing"

	"taskboard-api/internal/activity"
	"taskboard-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestNewTaskEvent(t *testing.T) {
	task := &models.Task{
		ID:          7,
		Title:       "Design",
		Description: "Wireframes",
		Status:      models.StatusTodo,
		ProjectID:   3,
		Owners:      []models.User{{Username: "alice"}, {Username: "bob"}},
	}
	user := &models.User{Username: "alice"}

	evt := NewTaskEvent(task, user, models.ActionCreated)
	require.Equal(t, "alice", evt.User)
	require.Equal(t, uint(7), evt.ID)
	require.Equal(t, uint(3), evt.ProjectID)
	require.Equal(t, models.ActionCreated, evt.Action)
	require.Equal(t, []string{"alice", "bob"}, evt.Owner)
	require.Empty(t, evt.FromStatus)
	require.Empty(t, evt.EditedFields)
}

func TestNewTaskEvent_AnonymousActor(t *testing.T) {
	task := &models.Task{ID: 1, ProjectID: 1}
	evt := NewTaskEvent(task, nil, models.ActionDeleted)
	require.Equal(t, AnonymousUser, evt.User)
}

func TestNewTaskMovedEvent(t *testing.T) {
	task := &models.Task{ID: 1, ProjectID: 1, Status: models.StatusDoing}
	evt := NewTaskMovedEvent(task, &models.User{Username: "bob"}, models.StatusTodo, models.StatusDoing)
	require.Equal(t, "To-Do", evt.FromStatus)
	require.Equal(t, "Doing", evt.ToStatus)

	// moved payloads carry from/to on the wire; edited_fields stays absent
	data, err := json.Marshal(evt)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, "To-Do", raw["from_status"])
	require.NotContains(t, raw, "edited_fields")
}

func TestNewTaskEditedEvent(t *testing.T) {
	task := &models.Task{ID: 1, ProjectID: 1}
	changes := []activity.FieldChange{{Field: "title", From: "a", To: "b"}}
	evt := NewTaskEditedEvent(task, &models.User{Username: "bob"}, changes)
	require.Equal(t, models.ActionEdited, evt.Action)
	require.Equal(t, changes, evt.EditedFields)
	require.Empty(t, evt.FromStatus)
}

func TestNewSubTaskEvent(t *testing.T) {
	sub := &models.SubTask{ID: 5, TaskID: 7, Title: "Checklist", Completed: true}
	evt := NewSubTaskEvent(sub, nil, "updated")
	require.Equal(t, uint(5), evt.SubTask.ID)
	require.Equal(t, uint(7), evt.SubTask.TaskID)
	require.True(t, evt.SubTask.Completed)
	require.Equal(t, "updated", evt.SubTask.Action)
	require.Equal(t, AnonymousUser, evt.SubTask.User)
}

func TestNewChatEvent(t *testing.T) {
	evt := NewChatEvent(&models.User{Username: "alice"}, "hi")
	require.Equal(t, ChatEvent{User: "alice", Message: "hi"}, evt)
}

func TestNewTaskUpdateEvent(t *testing.T) {
	task := &models.Task{ID: 9, Title: "Design"}
	data, err := json.Marshal(NewTaskUpdateEvent(task))
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, "update", raw["type"])
	require.Contains(t, raw, "task")
}
