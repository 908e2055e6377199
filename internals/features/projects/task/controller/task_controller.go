package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	projectModel "kerjaku_backend/internals/features/projects/project/model"
	taskDTO "kerjaku_backend/internals/features/projects/task/dto"
	taskModel "kerjaku_backend/internals/features/projects/task/model"
	helper "kerjaku_backend/internals/helpers"
)

type TaskController struct {
	DB *gorm.DB
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{DB: db}
}

var validate = validator.New()

// =======================
// GET /api/a/tasks
// =======================
func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := tc.DB.Model(&taskModel.TaskModel{}).
		Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if project := c.Query("project_id"); project != "" {
		q = q.Where("project_id = ?", project)
	}
	if assignee := c.Query("assigned_to_id"); assignee != "" {
		q = q.Where("assigned_to_id = ?", assignee)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count tasks")
	}

	var tasks []taskModel.TaskModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&tasks).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch tasks")
	}

	return helper.Success(c, "OK", fiber.Map{
		"tasks":      tasks,
		"pagination": helper.BuildPagination(paging, total, len(tasks)),
	})
}

// =======================
// POST /api/a/tasks
// =======================
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req taskDTO.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// the project must live in the caller's tenant
	var count int64
	if err := tc.DB.Model(&projectModel.ProjectModel{}).
		Where("id = ? AND organization_id = ? AND is_deleted = ?", req.ProjectID, orgID, false).
		Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if count == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Project not found")
	}

	task := req.ToModel(userID)
	task.OrganizationID = orgID
	if err := tc.DB.Create(task).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create task")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Task created successfully", task)
}

// =======================
// GET /api/a/tasks/:id
// =======================
func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	task, err := tc.findOrgTask(c)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", task)
}

// =======================
// PATCH /api/a/tasks/:id
// =======================
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	task, err := tc.findOrgTask(c)
	if err != nil {
		return err
	}

	var req taskDTO.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyToModel(task)
	if err := tc.DB.Save(task).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update task")
	}
	return helper.Success(c, "Task updated successfully", task)
}

// =======================
// DELETE /api/a/tasks/:id (soft)
// =======================
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	task, err := tc.findOrgTask(c)
	if err != nil {
		return err
	}

	task.MarkDeleted()
	if err := tc.DB.Save(task).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete task")
	}
	return helper.Success(c, "Task deleted successfully", nil)
}

func (tc *TaskController) findOrgTask(c *fiber.Ctx) (*taskModel.TaskModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var task taskModel.TaskModel
	err = tc.DB.First(&task, "id = ? AND organization_id = ? AND is_deleted = ?",
		c.Params("id"), orgID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "Task not found")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	return &task, nil
}
