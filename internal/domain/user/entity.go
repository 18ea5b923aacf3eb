package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin    Role = "admin"     // Full access, runs payroll
	RoleSubAdmin Role = "sub_admin" // Attendance corrections
	RoleHR       Role = "hr"        // Attendance corrections and overtime review
	RoleTeamLead Role = "team_lead" // Overtime review for the team
	RoleEmployee Role = "employee"  // Regular employee
	RoleClient   Role = "client"    // Portal access only, never on payroll
)

// PayrollRoles lists the roles that receive a payroll record each month.
var PayrollRoles = []Role{RoleEmployee, RoleHR, RoleTeamLead}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSubAdmin, RoleHR, RoleTeamLead, RoleEmployee, RoleClient:
		return true
	}
	return false
}

type SalaryType string

const (
	SalaryMonthly SalaryType = "monthly"
	SalaryDaily   SalaryType = "daily"
)

func (s SalaryType) Valid() bool {
	return s == SalaryMonthly || s == SalaryDaily
}

type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	SalaryType   *SalaryType
	SalaryAmount decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPayrollEligible reports whether the user's role is paid through payroll generation.
func (u *User) IsPayrollEligible() bool {
	for _, r := range PayrollRoles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Can checks the role's permission set.
func (u *User) Can(permission Permission) bool {
	return Allow(u.Role, permission)
}
