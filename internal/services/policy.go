package services

import (
	"errors"

	"github.com/DuJao22/Senhas-Wani/internal/models"
)

// Action names a policy-gated operation.
type Action string

const (
	ActionCreateRecord  Action = "create_record"
	ActionViewRecords   Action = "view_records"
	ActionExportRecords Action = "export_records"
	ActionViewDashboard Action = "view_dashboard"
	ActionManageUsers   Action = "manage_users"
)

// Error variables
var (
	ErrAccessDenied = errors.New("access denied")
	ErrUnitMismatch = errors.New("unit mismatch")
)

// adminOnly actions are denied to every non-admin identity regardless of unit.
func adminOnly(action Action) bool {
	return action == ActionViewDashboard || action == ActionManageUsers
}

// Authorize decides whether the identity may perform the action on the target
// unit. The same rule set gates both the create path and the read/filter path.
// An empty targetUnit means the identity's own permitted scope.
func Authorize(identity models.Identity, action Action, targetUnit string) error {
	if identity.IsAdmin() {
		return nil
	}

	if adminOnly(action) {
		return ErrAccessDenied
	}

	if targetUnit == "" || identity.Unit == models.UnitBoth {
		return nil
	}

	if identity.Unit != targetUnit {
		return ErrUnitMismatch
	}

	return nil
}
