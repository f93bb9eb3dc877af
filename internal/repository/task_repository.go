package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/avsivakumar/tada/internal/model"
)

// TaskRepository handles CRUD for tasks. Deletes are always soft: rows keep
// their identity with Active=false and drop out of every read path.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListActive returns all non-deleted tasks, templates included.
func (r *TaskRepository) ListActive(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("active = ?", true).
		Order("due_date ASC, created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListTemplates returns active recurring templates (recurring, no parent).
func (r *TaskRepository) ListTemplates(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("active = ? AND is_recurring = ? AND parent_task_id IS NULL", true, true).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListInstances returns the active instances generated from one template.
func (r *TaskRepository) ListInstances(ctx context.Context, templateID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("active = ? AND parent_task_id = ?", true, templateID).
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("active = ? AND id = ?", true, id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Save writes the full row back. Used for whole-record replacement; partial
// transitions go through Update.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Update applies a partial field merge and returns the fresh row.
func (r *TaskRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Task, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&model.Task{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var task model.Task
	if err := db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// SoftDelete marks the task inactive, keeping the row in storage.
func (r *TaskRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Search matches active tasks whose title or tags contain the query.
func (r *TaskRepository) Search(ctx context.Context, query string) ([]model.Task, error) {
	like := "%" + query + "%"
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("active = ? AND (title LIKE ? OR tags LIKE ?)", true, like, like).
		Order("due_date ASC, created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
