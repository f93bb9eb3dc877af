package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/avsivakumar/tada/internal/model"
	"github.com/avsivakumar/tada/internal/recurrence"
	"github.com/avsivakumar/tada/internal/reminder"
	"github.com/avsivakumar/tada/internal/repository"
)

// ErrTemplateNotCompletable is returned when a completion toggle targets a
// recurring template; only instances and standalone tasks complete.
var ErrTemplateNotCompletable = errors.New("recurring templates cannot be completed")

// TaskInput represents data required to create or replace a task.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`

	DueDate string `json:"dueDate"`
	DueTime string `json:"dueTime"`

	ReminderNumber int    `json:"reminderNumber"`
	ReminderUnit   string `json:"reminderUnit"`

	IsRecurring          bool   `json:"isRecurring"`
	RecurrencePattern    string `json:"recurrencePattern"`
	RecurrenceMinute     *int   `json:"recurrenceMinute"`
	RecurrenceTime       string `json:"recurrenceTime"`
	RecurrenceDayOfWeek  int    `json:"recurrenceDayOfWeek"`
	RecurrenceDayOfMonth int    `json:"recurrenceDayOfMonth"`
	RecurrenceMonth      int    `json:"recurrenceMonth"`
	RecurrenceDayOfYear  int    `json:"recurrenceDayOfYear"`
	RecurrenceEndDate    string `json:"recurrenceEndDate"`
}

// TaskService is the lifecycle controller: it owns template materialization,
// completion semantics, and the snooze/dismiss transitions, always going back
// to the repository for the authoritative rows.
type TaskService struct {
	taskRepo *repository.TaskRepository

	// Guards against two overlapping materialization passes both reading a
	// stale watermark and double-generating.
	materializing atomic.Bool
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	task := taskFromInput(input)
	task.Active = true
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ReplaceTask overwrites the editable fields of an existing task with input.
func (s *TaskService) ReplaceTask(ctx context.Context, id uint, input TaskInput) (*model.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t := taskFromInput(input)
	task.Title = t.Title
	task.Description = t.Description
	task.Priority = t.Priority
	task.Tags = t.Tags
	task.DueDate = t.DueDate
	task.DueTime = t.DueTime
	task.ReminderNumber = t.ReminderNumber
	task.ReminderUnit = t.ReminderUnit
	task.ReminderTime = t.ReminderTime
	task.IsRecurring = t.IsRecurring
	task.RecurrencePattern = t.RecurrencePattern
	task.RecurrenceMinute = t.RecurrenceMinute
	task.RecurrenceTime = t.RecurrenceTime
	task.RecurrenceDayOfWeek = t.RecurrenceDayOfWeek
	task.RecurrenceDayOfMonth = t.RecurrenceDayOfMonth
	task.RecurrenceMonth = t.RecurrenceMonth
	task.RecurrenceDayOfYear = t.RecurrenceDayOfYear
	task.RecurrenceEndDate = t.RecurrenceEndDate

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.ListActive(ctx)
}

func (s *TaskService) SearchTasks(ctx context.Context, query string) ([]model.Task, error) {
	return s.taskRepo.Search(ctx, query)
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	return s.taskRepo.SoftDelete(ctx, id)
}

// Materialize runs one generation pass: every active template that is due
// produces exactly one new instance and has its watermark advanced to the
// instance's due date. At most one pass runs at a time; a pass started while
// another is in flight returns immediately with no work done.
//
// Templates are processed sequentially, so each persisted instance is visible
// before the next template is evaluated.
func (s *TaskService) Materialize(ctx context.Context, now time.Time) (int, error) {
	if !s.materializing.CompareAndSwap(false, true) {
		return 0, nil
	}
	defer s.materializing.Store(false)

	templates, err := s.taskRepo.ListTemplates(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range templates {
		tpl := templates[i]
		instances, err := s.taskRepo.ListInstances(ctx, tpl.ID)
		if err != nil {
			return created, err
		}
		if !recurrence.IsDueForGeneration(&tpl, instances, now) {
			continue
		}
		spec := recurrence.NextOccurrence(&tpl, now)
		if spec == nil {
			continue
		}

		inst := instantiate(&tpl, spec)
		if err := s.taskRepo.Create(ctx, inst); err != nil {
			return created, err
		}
		if _, err := s.taskRepo.Update(ctx, tpl.ID, map[string]interface{}{
			"last_generated_date": inst.DueDate,
		}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ToggleCompletion flips the completion state of an instance or standalone
// task, stamping or clearing the completion moment. Templates are rejected.
func (s *TaskService) ToggleCompletion(ctx context.Context, id uint, now time.Time) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Role() == model.RoleTemplate {
		return nil, ErrTemplateNotCompletable
	}

	var fields map[string]interface{}
	if task.Completed {
		fields = map[string]interface{}{
			"completed":       false,
			"completion_date": "",
			"completion_time": "",
		}
	} else {
		fields = map[string]interface{}{
			"completed":       true,
			"completion_date": model.FormatDate(now),
			"completion_time": now.Format(model.ClockLayout),
		}
	}
	return s.taskRepo.Update(ctx, id, fields)
}

// Snooze suppresses the task's fired reminder for the given number of minutes.
func (s *TaskService) Snooze(ctx context.Context, id uint, minutes int, now time.Time) (*model.Task, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("snooze minutes must be positive")
	}
	until := now.Add(time.Duration(minutes) * time.Minute)
	return s.taskRepo.Update(ctx, id, map[string]interface{}{"snoozed_until": until})
}

// Dismiss acknowledges a fired reminder. Hourly templates go quiet for the
// rest of the clock hour; for everything else the one-shot reminder is
// cleared for good.
func (s *TaskService) Dismiss(ctx context.Context, id uint, now time.Time) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.Role() == model.RoleTemplate && task.RecurrencePattern == model.PatternHourly {
		return s.taskRepo.Update(ctx, id, map[string]interface{}{"last_dismissed_hour": now})
	}
	return s.taskRepo.Update(ctx, id, map[string]interface{}{
		"reminder_time":   nil,
		"reminder_number": 0,
		"reminder_unit":   "",
		"snoozed_until":   nil,
	})
}

// Reschedule moves a task to a new due date without touching its recurrence
// state or reminder configuration.
func (s *TaskService) Reschedule(ctx context.Context, id uint, dueDate string) (*model.Task, error) {
	if _, ok := model.ParseDate(dueDate); !ok {
		return nil, fmt.Errorf("invalid due date %q", dueDate)
	}
	return s.taskRepo.Update(ctx, id, map[string]interface{}{"due_date": dueDate})
}

func taskFromInput(input TaskInput) *model.Task {
	task := &model.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Tags:        input.Tags,
		DueDate:     input.DueDate,
		DueTime:     input.DueTime,
	}

	if input.IsRecurring {
		task.IsRecurring = true
		task.RecurrencePattern = input.RecurrencePattern
		task.RecurrenceMinute = input.RecurrenceMinute
		task.RecurrenceTime = input.RecurrenceTime
		task.RecurrenceDayOfWeek = input.RecurrenceDayOfWeek
		task.RecurrenceDayOfMonth = input.RecurrenceDayOfMonth
		task.RecurrenceMonth = input.RecurrenceMonth
		task.RecurrenceDayOfYear = input.RecurrenceDayOfYear
		task.RecurrenceEndDate = input.RecurrenceEndDate
	}

	// Relative reminders resolve to an absolute fire time at save.
	task.ReminderNumber = input.ReminderNumber
	task.ReminderUnit = input.ReminderUnit
	task.ReminderTime = reminder.Resolve(task.DueDate, task.DueTime, input.ReminderNumber, input.ReminderUnit)

	return task
}

// instantiate snapshots a template into a concrete dated instance. Tags,
// priority, and the reminder configuration are copied at creation time, not
// live-linked.
func instantiate(tpl *model.Task, spec *recurrence.DueSpec) *model.Task {
	parentID := tpl.ID
	inst := &model.Task{
		Title:          tpl.Title,
		Description:    tpl.Description,
		Priority:       tpl.Priority,
		Tags:           append([]string(nil), tpl.Tags...),
		DueDate:        model.FormatDate(spec.Date),
		DueTime:        spec.Time,
		ReminderNumber: tpl.ReminderNumber,
		ReminderUnit:   tpl.ReminderUnit,
		ParentTaskID:   &parentID,
		Active:         true,
	}
	inst.ReminderTime = reminder.Resolve(inst.DueDate, inst.DueTime, inst.ReminderNumber, inst.ReminderUnit)
	return inst
}
