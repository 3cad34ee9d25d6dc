package service

import (
	"github.com/google/uuid"

	"github.com/Davie-07/school-management-system/internals/constants"
	reportmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/reports/model"
)

// CanRespond: admins, the directly targeted user, and staff whose dashboard
// the report was routed to.
func CanRespond(userID uuid.UUID, role string, rpt *reportmodel.Report) bool {
	if role == constants.RoleAdmin {
		return true
	}
	if rpt.ReportTargetUserID != nil && *rpt.ReportTargetUserID == userID {
		return true
	}
	if role == constants.RoleTeacher && rpt.ReportTargetDashboard == reportmodel.DashboardTeacher {
		return true
	}
	if role == constants.RoleFinance && rpt.ReportTargetDashboard == reportmodel.DashboardFinance {
		return true
	}
	return false
}

// CanView: everyone who can respond, plus the reporter.
func CanView(userID uuid.UUID, role string, rpt *reportmodel.Report) bool {
	if rpt.ReportReporterID == userID {
		return true
	}
	return CanRespond(userID, role, rpt)
}
