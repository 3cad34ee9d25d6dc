package constants

// Roles recognised across the system. A user has exactly one.
const (
	RoleStudent  = "student"
	RoleTeacher  = "teacher"
	RoleAdmin    = "admin"
	RoleFinance  = "finance"
	RoleGatepass = "gatepass"
)

var AllRoles = []string{RoleStudent, RoleTeacher, RoleAdmin, RoleFinance, RoleGatepass}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
