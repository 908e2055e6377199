package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	teamDTO "kerjaku_backend/internals/features/organizations/team/dto"
	teamModel "kerjaku_backend/internals/features/organizations/team/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
	helper "kerjaku_backend/internals/helpers"
)

type TeamController struct {
	DB *gorm.DB
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{DB: db}
}

var validate = validator.New()

// =======================
// GET /api/a/teams
// =======================
func (tc *TeamController) GetTeams(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	var teams []teamModel.TeamModel
	q := tc.DB.Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if dept := c.Query("department_id"); dept != "" {
		q = q.Where("department_id = ?", dept)
	}
	if err := q.Order("name ASC").Find(&teams).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch teams")
	}
	return helper.Success(c, "OK", fiber.Map{"teams": teams})
}

// =======================
// POST /api/a/teams
// =======================
func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	var req teamDTO.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	team := req.ToModel()
	team.OrganizationID = orgID
	if err := tc.DB.Create(team).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create team")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Team created successfully", team)
}

// =======================
// GET /api/a/teams/:id
// =======================
func (tc *TeamController) GetTeam(c *fiber.Ctx) error {
	team, err := tc.findOrgTeam(c)
	if err != nil {
		return err
	}

	var members []teamModel.TeamMemberModel
	if err := tc.DB.Where("team_id = ? AND is_deleted = ?", team.ID, false).
		Find(&members).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch team members")
	}

	return helper.Success(c, "OK", fiber.Map{
		"team":    team,
		"members": members,
	})
}

// =======================
// PATCH /api/a/teams/:id
// =======================
func (tc *TeamController) UpdateTeam(c *fiber.Ctx) error {
	team, err := tc.findOrgTeam(c)
	if err != nil {
		return err
	}

	var req teamDTO.UpdateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyToModel(team)
	if err := tc.DB.Save(team).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update team")
	}
	return helper.Success(c, "Team updated successfully", team)
}

// =======================
// DELETE /api/a/teams/:id (soft)
// =======================
func (tc *TeamController) DeleteTeam(c *fiber.Ctx) error {
	team, err := tc.findOrgTeam(c)
	if err != nil {
		return err
	}

	team.MarkDeleted()
	team.IsActive = false
	if err := tc.DB.Save(team).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete team")
	}
	return helper.Success(c, "Team deleted successfully", nil)
}

// =======================
// POST /api/a/teams/:id/members
// =======================
func (tc *TeamController) AddMember(c *fiber.Ctx) error {
	team, err := tc.findOrgTeam(c)
	if err != nil {
		return err
	}

	var req teamDTO.AddTeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// members come from the same tenant
	var count int64
	if err := tc.DB.Model(&userModel.UserModel{}).
		Where("id = ? AND organization_id = ? AND is_deleted = ?", req.UserID, team.OrganizationID, false).
		Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if count == 0 {
		return helper.Error(c, fiber.StatusNotFound, "User not found in this organization")
	}

	if err := tc.DB.Model(&teamModel.TeamMemberModel{}).
		Where("team_id = ? AND user_id = ? AND is_deleted = ?", team.ID, req.UserID, false).
		Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusConflict, "User is already on this team")
	}

	member := &teamModel.TeamMemberModel{
		TeamID:   team.ID,
		UserID:   req.UserID,
		IsActive: true,
	}
	if err := tc.DB.Create(member).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to add team member")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Team member added", member)
}

// =======================
// DELETE /api/a/teams/:id/members/:userId
// =======================
func (tc *TeamController) RemoveMember(c *fiber.Ctx) error {
	team, err := tc.findOrgTeam(c)
	if err != nil {
		return err
	}

	var member teamModel.TeamMemberModel
	err = tc.DB.First(&member, "team_id = ? AND user_id = ? AND is_deleted = ?",
		team.ID, c.Params("userId"), false).Error
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Team member not found")
	}

	member.MarkDeleted()
	member.IsActive = false
	if err := tc.DB.Save(&member).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to remove team member")
	}
	return helper.Success(c, "Team member removed", nil)
}

func (tc *TeamController) findOrgTeam(c *fiber.Ctx) (*teamModel.TeamModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var team teamModel.TeamModel
	err = tc.DB.First(&team, "id = ? AND organization_id = ? AND is_deleted = ?",
		c.Params("id"), orgID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "Team not found")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	return &team, nil
}
