package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kerjaku_backend/internals/constants"
	userModel "kerjaku_backend/internals/features/users/user/model"
)

// AllReportIDs walks the manager → direct-reports adjacency list and returns
// every direct and indirect report of managerID. Iterative BFS with a visited
// set: the org chart is assumed to be a tree, but a bad manager_id edit could
// introduce a cycle and this must not loop forever.
func AllReportIDs(db *gorm.DB, managerID uuid.UUID) ([]uuid.UUID, error) {
	visited := map[uuid.UUID]struct{}{managerID: {}}
	queue := []uuid.UUID{managerID}
	var out []uuid.UUID

	for len(queue) > 0 {
		batch := queue
		queue = nil

		var rows []struct {
			ID uuid.UUID
		}
		err := db.Table("users").
			Select("id").
			Where("manager_id IN ?", batch).
			Where("is_active = ? AND is_deleted = ?", true, false).
			Find(&rows).Error
		if err != nil {
			return nil, err
		}

		for _, r := range rows {
			if _, seen := visited[r.ID]; seen {
				continue
			}
			visited[r.ID] = struct{}{}
			out = append(out, r.ID)
			queue = append(queue, r.ID)
		}
	}

	return out, nil
}

// ManagesUser reports whether actor may manage target:
// global admins manage everyone, org admins manage their own org, and
// managers/team leads manage their reports tree.
func ManagesUser(db *gorm.DB, actor *userModel.UserModel, target *userModel.UserModel) (bool, error) {
	if actor == nil || target == nil {
		return false, nil
	}
	if actor.ID == target.ID {
		return false, nil
	}

	switch actor.Role {
	case constants.RoleGlobalAdmin:
		return true, nil
	case constants.RoleAdmin, constants.RoleClientAdmin:
		return actor.OrganizationID != nil && target.OrganizationID != nil &&
			*actor.OrganizationID == *target.OrganizationID, nil
	case constants.RoleManager, constants.RoleTeamLead:
		if target.ManagerID != nil && *target.ManagerID == actor.ID {
			return true, nil
		}
		reports, err := AllReportIDs(db, actor.ID)
		if err != nil {
			return false, err
		}
		for _, id := range reports {
			if id == target.ID {
				return true, nil
			}
		}
		return false, nil
	}

	return false, nil
}
