package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"task-reminder/internal/model"
	"task-reminder/internal/parser"
	"task-reminder/internal/task/repository"
	"task-reminder/pkg/gcalendar"
	"task-reminder/pkg/notion"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// mockRepo is an in-memory repository.Repository.
type mockRepo struct {
	tasks  map[int64]model.Task
	nextID int64
	fail   bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{tasks: map[int64]model.Task{}}
}

func (m *mockRepo) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	if m.fail {
		return model.Task{}, repository.ErrFailedToInsert
	}
	m.nextID++
	t := model.Task{
		ID: m.nextID, UserID: opt.UserID, ChatID: opt.ChatID, Title: opt.Title, Description: opt.Description,
		DueAt: opt.DueAt, RemindAt: opt.RemindAt, RepeatRule: opt.RepeatRule, Status: model.TaskStatusOpen,
	}
	m.tasks[t.ID] = t
	return t, nil
}

func (m *mockRepo) GetTask(ctx context.Context, id int64) (model.Task, error) {
	if m.fail {
		return model.Task{}, repository.ErrFailedToGet
	}
	return m.tasks[id], nil
}

func (m *mockRepo) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	if m.fail {
		return nil, repository.ErrFailedToList
	}
	var out []model.Task
	for _, t := range m.tasks {
		if (opt.UserID == 0 || t.UserID == opt.UserID) && (opt.Status == "" || t.Status == opt.Status) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRepo) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	if m.fail {
		return model.Task{}, repository.ErrFailedToUpdate
	}
	t, ok := m.tasks[opt.ID]
	if !ok {
		return model.Task{}, nil
	}
	t.Title, t.Description = opt.Title, opt.Description
	t.DueAt, t.RemindAt, t.RepeatRule = opt.DueAt, opt.RemindAt, opt.RepeatRule
	t.Status, t.NotionPageID, t.CalendarEventID, t.RemindedAt = opt.Status, opt.NotionPageID, opt.CalendarEventID, opt.RemindedAt
	m.tasks[t.ID] = t
	return t, nil
}

func (m *mockRepo) DeleteTask(ctx context.Context, id int64) error {
	if m.fail {
		return repository.ErrFailedToDelete
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockRepo) ListPendingReminders(ctx context.Context, now time.Time, limit int) ([]model.Task, error) {
	if m.fail {
		return nil, repository.ErrFailedToList
	}
	var out []model.Task
	for _, t := range m.tasks {
		if t.Status == model.TaskStatusOpen && t.RemindAt != nil && !t.RemindAt.After(now) && t.RemindedAt == nil {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) MarkReminded(ctx context.Context, id int64, at time.Time) error {
	t := m.tasks[id]
	t.RemindedAt = &at
	m.tasks[id] = t
	return nil
}

// mockExtractor returns a fixed ParsedTask and records the reference time.
type mockExtractor struct {
	result  parser.ParsedTask
	lastNow time.Time
}

func (m *mockExtractor) Extract(ctx context.Context, text string, now time.Time) parser.ParsedTask {
	m.lastNow = now
	return m.result
}

type sentMessage struct {
	chatID int64
	text   string
}

type mockNotifier struct {
	sent   []sentMessage
	failOn map[int64]bool
}

func (m *mockNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	if m.failOn[chatID] {
		return errors.New("telegram down")
	}
	m.sent = append(m.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

type mockNotion struct {
	fail     bool
	created  []notion.CreatePageRequest
	updated  []notion.UpdatePageRequest
	archived []string
}

func (m *mockNotion) CreatePage(ctx context.Context, req notion.CreatePageRequest) (*notion.Page, error) {
	if m.fail {
		return nil, errors.New("notion down")
	}
	m.created = append(m.created, req)
	return &notion.Page{ID: "page-1"}, nil
}

func (m *mockNotion) UpdatePage(ctx context.Context, req notion.UpdatePageRequest) error {
	m.updated = append(m.updated, req)
	return nil
}

func (m *mockNotion) ArchivePage(ctx context.Context, pageID string) error {
	m.archived = append(m.archived, pageID)
	return nil
}

type mockCalendar struct {
	fail    bool
	created []gcalendar.CreateEventRequest
	moved   []gcalendar.UpdateEventRequest
	deleted []string
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	if m.fail {
		return nil, errors.New("calendar down")
	}
	m.created = append(m.created, req)
	return &gcalendar.Event{ID: "event-1"}, nil
}

func (m *mockCalendar) UpdateEventTime(ctx context.Context, req gcalendar.UpdateEventRequest) error {
	m.moved = append(m.moved, req)
	return nil
}

func (m *mockCalendar) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	m.deleted = append(m.deleted, eventID)
	return nil
}

// monday is the fixed clock of these tests: 2026-02-02 12:00 UTC.
var monday = time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *implUseCase
	repo      *mockRepo
	extractor *mockExtractor
	notifier  *mockNotifier
	notion    *mockNotion
	calendar  *mockCalendar
}

func newFixture() fixture {
	f := fixture{
		repo:      newMockRepo(),
		extractor: &mockExtractor{},
		notifier:  &mockNotifier{},
		notion:    &mockNotion{},
		calendar:  &mockCalendar{},
	}
	f.uc = New(&mockLogger{}, f.repo, f.extractor, f.notifier, f.notion, f.calendar, Config{CalendarID: "work"}).(*implUseCase)
	f.uc.now = func() time.Time { return monday }
	return f
}

func ptrTime(t time.Time) *time.Time { return &t }
