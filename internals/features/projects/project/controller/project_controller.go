package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	projectDTO "kerjaku_backend/internals/features/projects/project/dto"
	projectModel "kerjaku_backend/internals/features/projects/project/model"
	helper "kerjaku_backend/internals/helpers"
)

type ProjectController struct {
	DB *gorm.DB
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{DB: db}
}

var validate = validator.New()

// =======================
// GET /api/a/projects
// =======================
func (pc *ProjectController) GetProjects(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := pc.DB.Model(&projectModel.ProjectModel{}).
		Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if client := c.Query("client_id"); client != "" {
		q = q.Where("client_id = ?", client)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count projects")
	}

	var projects []projectModel.ProjectModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&projects).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch projects")
	}

	return helper.Success(c, "OK", fiber.Map{
		"projects":   projects,
		"pagination": helper.BuildPagination(paging, total, len(projects)),
	})
}

// =======================
// GET /api/u/projects — projects the caller can log time to
// =======================
func (pc *ProjectController) GetMyProjects(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var projects []projectModel.ProjectModel
	err = pc.DB.
		Where("organization_id = ? AND is_deleted = ? AND allow_time_tracking = ?", orgID, false, true).
		Where("status IN ?", []string{projectModel.ProjectStatusActive, projectModel.ProjectStatusInProgress}).
		Where("project_manager_id = ? OR id IN (?)", userID,
			pc.DB.Model(&projectModel.ProjectMembershipModel{}).
				Select("project_id").
				Where("user_id = ? AND is_active = ? AND is_deleted = ?", userID, true, false)).
		Order("name ASC").
		Find(&projects).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch projects")
	}

	return helper.Success(c, "OK", fiber.Map{"projects": projects})
}

// =======================
// POST /api/a/projects
// =======================
func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	var req projectDTO.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	project := req.ToModel()
	project.OrganizationID = orgID
	if err := pc.DB.Create(project).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create project")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Project created successfully", project)
}

// =======================
// GET /api/a/projects/:id
// =======================
func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	project, err := pc.findOrgProject(c)
	if err != nil {
		return err
	}

	var members []projectModel.ProjectMembershipModel
	if err := pc.DB.Where("project_id = ? AND is_deleted = ?", project.ID, false).
		Find(&members).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch memberships")
	}

	return helper.Success(c, "OK", fiber.Map{
		"project": project,
		"members": members,
	})
}

// =======================
// PATCH /api/a/projects/:id
// =======================
func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	project, err := pc.findOrgProject(c)
	if err != nil {
		return err
	}

	var req projectDTO.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyToModel(project)
	if err := pc.DB.Save(project).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update project")
	}
	return helper.Success(c, "Project updated successfully", project)
}

// =======================
// DELETE /api/a/projects/:id (soft)
// =======================
func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	project, err := pc.findOrgProject(c)
	if err != nil {
		return err
	}

	project.MarkDeleted()
	project.AllowTimeTracking = false
	if err := pc.DB.Save(project).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete project")
	}
	return helper.Success(c, "Project deleted successfully", nil)
}

// =======================
// POST /api/a/projects/:id/members
// =======================
func (pc *ProjectController) AddMember(c *fiber.Ctx) error {
	project, err := pc.findOrgProject(c)
	if err != nil {
		return err
	}

	var req projectDTO.AddProjectMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var count int64
	if err := pc.DB.Model(&projectModel.ProjectMembershipModel{}).
		Where("project_id = ? AND user_id = ? AND is_deleted = ?", project.ID, req.UserID, false).
		Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusConflict, "User is already on this project")
	}

	member := req.ToModel(project.ID)
	if err := pc.DB.Create(member).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to add project member")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Project member added", member)
}

// =======================
// DELETE /api/a/projects/:id/members/:userId
// =======================
func (pc *ProjectController) RemoveMember(c *fiber.Ctx) error {
	project, err := pc.findOrgProject(c)
	if err != nil {
		return err
	}

	var member projectModel.ProjectMembershipModel
	err = pc.DB.First(&member, "project_id = ? AND user_id = ? AND is_deleted = ?",
		project.ID, c.Params("userId"), false).Error
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Project member not found")
	}

	member.MarkDeleted()
	member.IsActive = false
	if err := pc.DB.Save(&member).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to remove project member")
	}
	return helper.Success(c, "Project member removed", nil)
}

func (pc *ProjectController) findOrgProject(c *fiber.Ctx) (*projectModel.ProjectModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var project projectModel.ProjectModel
	err = pc.DB.First(&project, "id = ? AND organization_id = ? AND is_deleted = ?",
		c.Params("id"), orgID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "Project not found")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	return &project, nil
}
