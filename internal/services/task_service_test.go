package services

import (
	"encoding/json"
	"sync"
	"testing"

	"taskboard-api/internal/activity"
	"taskboard-api/internal/models"
	"taskboard-api/internal/notify"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingBroadcaster captures broadcasts per topic.
type recordingBroadcaster struct {
	mu     sync.Mutex
	topics []string
	events []any
}

func (b *recordingBroadcaster) Broadcast(topic string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, topic)
	b.events = append(b.events, payload)
}

func (b *recordingBroadcaster) last() (string, any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) == 0 {
		return "", nil
	}
	return b.topics[len(b.topics)-1], b.events[len(b.events)-1]
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

type taskFixture struct {
	db        *gorm.DB
	tasks     *TaskService
	projects  *ProjectService
	broadcast *recordingBroadcaster
	alice     models.User
	bob       models.User
	project   models.Project
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	alice := models.User{Username: "alice", Password: "x"}
	bob := models.User{Username: "bob", Password: "x"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	project := models.Project{Name: "P", Members: []models.User{alice, bob}}
	require.NoError(t, db.Create(&project).Error)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	logger := activity.NewLogger(repository.NewActivityLogRepository(db))
	broadcast := &recordingBroadcaster{}

	projects := NewProjectService(projectRepo, userRepo)
	tasks := NewTaskService(taskRepo, userRepo, projects, logger, broadcast)

	return &taskFixture{
		db:        db,
		tasks:     tasks,
		projects:  projects,
		broadcast: broadcast,
		alice:     alice,
		bob:       bob,
		project:   project,
	}
}

func (f *taskFixture) logs(t *testing.T) []models.ActivityLog {
	t.Helper()
	var entries []models.ActivityLog
	require.NoError(t, f.db.Order("id asc").Find(&entries).Error)
	return entries
}

func TestTaskService_CreateLogsAndBroadcasts(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{
		Title:  "Design",
		Status: models.StatusTodo,
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusTodo, task.Status)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	require.Equal(t, models.ActionCreated, logs[0].Action)
	require.Equal(t, "Design", logs[0].TaskTitle)
	require.Equal(t, f.alice.ID, logs[0].UserID)

	topic, payload := f.broadcast.last()
	require.Equal(t, "task-room:1", topic)
	evt := payload.(notify.TaskEvent)
	require.Equal(t, models.ActionCreated, evt.Action)
	require.Equal(t, "Design", evt.Title)
	require.Equal(t, models.StatusTodo, evt.Status)
	require.Equal(t, "alice", evt.User)
}

func TestTaskService_StatusChangeRecordsMoved(t *testing.T) {
	f := newTaskFixture(t)
	task, err := f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{Title: "Design"})
	require.NoError(t, err)

	doing := models.StatusDoing
	_, err = f.tasks.Update(task.ID, f.bob.ID, UpdateTaskInput{Status: &doing})
	require.NoError(t, err)

	logs := f.logs(t)
	require.Len(t, logs, 2)
	moved := logs[1]
	require.Equal(t, models.ActionMoved, moved.Action)
	require.Equal(t, "To-Do", moved.FromStatus)
	require.Equal(t, "Doing", moved.ToStatus)
	require.Equal(t, f.bob.ID, moved.UserID)

	topic, payload := f.broadcast.last()
	require.Equal(t, "task-room:1", topic)
	evt := payload.(notify.TaskEvent)
	require.Equal(t, models.ActionMoved, evt.Action)
	require.Equal(t, "To-Do", evt.FromStatus)
	require.Equal(t, "Doing", evt.ToStatus)
	require.Equal(t, "bob", evt.User)
}

func TestTaskService_FieldChangeRecordsEdited(t *testing.T) {
	f := newTaskFixture(t)
	task, err := f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{Title: "Design"})
	require.NoError(t, err)

	title := "Design v2"
	desc := "with notes"
	_, err = f.tasks.Update(task.ID, f.alice.ID, UpdateTaskInput{Title: &title, Description: &desc})
	require.NoError(t, err)

	logs := f.logs(t)
	require.Len(t, logs, 2)
	edited := logs[1]
	require.Equal(t, models.ActionEdited, edited.Action)
	require.Equal(t, "title: 'Design' to 'Design v2', description: 'None' to 'with notes'", edited.EditedFields)
	require.Empty(t, edited.FromStatus)

	_, payload := f.broadcast.last()
	evt := payload.(notify.TaskEvent)
	require.Equal(t, models.ActionEdited, evt.Action)
	require.Len(t, evt.EditedFields, 2)
}

func TestTaskService_OwnerReorderIsNotAChange(t *testing.T) {
	f := newTaskFixture(t)
	task, err := f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{
		Title:    "Design",
		OwnerIDs: []uint{f.alice.ID, f.bob.ID},
	})
	require.NoError(t, err)
	before := f.broadcast.count()

	reordered := []uint{f.bob.ID, f.alice.ID}
	_, err = f.tasks.Update(task.ID, f.alice.ID, UpdateTaskInput{OwnerIDs: &reordered})
	require.NoError(t, err)

	require.Len(t, f.logs(t), 1) // only the create entry
	require.Equal(t, before, f.broadcast.count())
}

func TestTaskService_OwnerSetChangeIsLogged(t *testing.T) {
	f := newTaskFixture(t)
	task, err := f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{
		Title:    "Design",
		OwnerIDs: []uint{f.alice.ID},
	})
	require.NoError(t, err)

	owners := []uint{f.alice.ID, f.bob.ID}
	_, err = f.tasks.Update(task.ID, f.alice.ID, UpdateTaskInput{OwnerIDs: &owners})
	require.NoError(t, err)

	logs := f.logs(t)
	require.Len(t, logs, 2)
	require.Equal(t, models.ActionEdited, logs[1].Action)
	require.Equal(t, "owner: 'alice' to 'alice, bob'", logs[1].EditedFields)
}

func TestTaskService_NonMemberIsDenied(t *testing.T) {
	f := newTaskFixture(t)
	outsider := models.User{Username: "mallory", Password: "x"}
	require.NoError(t, f.db.Create(&outsider).Error)

	_, err := f.tasks.Create(f.project.ID, outsider.ID, CreateTaskInput{Title: "Sneaky"})
	require.ErrorIs(t, err, ErrNotProjectMember)
	require.Empty(t, f.logs(t))
	require.Zero(t, f.broadcast.count())
}

func TestTaskService_UpdateMissingTask(t *testing.T) {
	f := newTaskFixture(t)
	title := "x"
	_, err := f.tasks.Update(999, f.alice.ID, UpdateTaskInput{Title: &title})
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_DeleteCascadesSubTasks(t *testing.T) {
	f := newTaskFixture(t)
	task, err := f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{Title: "Design"})
	require.NoError(t, err)
	require.NoError(t, f.db.Create(&models.SubTask{TaskID: task.ID, Title: "step 1"}).Error)

	require.NoError(t, f.tasks.Delete(task.ID, f.alice.ID))

	var count int64
	require.NoError(t, f.db.Model(&models.SubTask{}).Where("task_id = ?", task.ID).Count(&count).Error)
	require.Zero(t, count)

	logs := f.logs(t)
	require.Equal(t, models.ActionDeleted, logs[len(logs)-1].Action)

	_, payload := f.broadcast.last()
	require.Equal(t, models.ActionDeleted, payload.(notify.TaskEvent).Action)
}

func TestTaskService_ListSortedByOrder(t *testing.T) {
	f := newTaskFixture(t)
	_, err := f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{Title: "second", Order: 5})
	require.NoError(t, err)
	_, err = f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{Title: "first", Order: 1})
	require.NoError(t, err)

	tasks, err := f.tasks.List(f.project.ID, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "first", tasks[0].Title)
	require.Equal(t, "second", tasks[1].Title)
}

func TestTaskService_ApplyRealtimeEdit(t *testing.T) {
	f := newTaskFixture(t)
	task, err := f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{Title: "Design"})
	require.NoError(t, err)

	raw := json.RawMessage(`{"id": 1, "title": "Design live", "percentage": 40}`)
	updated, err := f.tasks.ApplyRealtimeEdit(f.project.ID, raw)
	require.NoError(t, err)
	require.Equal(t, "Design live", updated.Title)
	require.Equal(t, 40, updated.Percentage)

	// persisted, not only in memory
	stored, err := f.tasks.Get(task.ID)
	require.NoError(t, err)
	require.Equal(t, "Design live", stored.Title)
}

func TestTaskService_ApplyRealtimeEditRejectsWrongProject(t *testing.T) {
	f := newTaskFixture(t)
	_, err := f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{Title: "Design"})
	require.NoError(t, err)

	_, err = f.tasks.ApplyRealtimeEdit(f.project.ID+1, json.RawMessage(`{"id": 1, "title": "x"}`))
	require.ErrorIs(t, err, ErrTaskNotInProject)
}

func TestTaskService_ApplyRealtimeEditValidates(t *testing.T) {
	f := newTaskFixture(t)
	_, err := f.tasks.Create(f.project.ID, f.alice.ID, CreateTaskInput{Title: "Design"})
	require.NoError(t, err)

	_, err = f.tasks.ApplyRealtimeEdit(f.project.ID, json.RawMessage(`{"id": 1, "status": "Paused"}`))
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.tasks.ApplyRealtimeEdit(f.project.ID, json.RawMessage(`{"id": 1, "percentage": 150}`))
	require.ErrorIs(t, err, ErrInvalidPercentage)

	_, err = f.tasks.ApplyRealtimeEdit(f.project.ID, json.RawMessage(`{"title": "no id"}`))
	require.ErrorIs(t, err, ErrTaskNotFound)
}
