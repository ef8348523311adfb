package project

// Role is a per-project capability tag. A user may hold any number of roles
// on a project; a view declares the set of roles it accepts.
type Role string

const (
	// RoleAdmin can access anything and is granted automatically to the
	// project creator.
	RoleAdmin Role = "ADMIN"
	// RoleUser has most rights, but not all.
	RoleUser Role = "USER"

	RoleClient           Role = "CLIENT"
	RoleConsultant       Role = "CONSULTANT"
	RoleContractor       Role = "CONTRACTOR"
	RolePortfolioManager Role = "PORTFOLIO_MANAGER"

	// Contracts management
	RoleContractVariations Role = "CONTRACT_VARIATIONS"
	RoleCorrespondence     Role = "CORRESPONDENCE"

	// Payment certificates
	RolePaymentCertificates Role = "PAYMENT_CERTIFICATES"
	RoleAdvancePayments     Role = "ADVANCE_PAYMENTS"
	RoleRetention           Role = "RETENTION"
	RoleMaterialsOnSite     Role = "MATERIALS_ON_SITE"
	RoleEscalation          Role = "ESCALATION"
	RoleSpecialItems        Role = "SPECIAL_ITEMS"

	// Forecasts
	RoleCostForecasts     Role = "COST_FORECASTS"
	RoleCashflowForecasts Role = "CASHFLOW_FORECASTS"
)

// AllRoles lists every assignable role.
var AllRoles = []Role{
	RoleAdmin,
	RoleUser,
	RoleClient,
	RoleConsultant,
	RoleContractor,
	RolePortfolioManager,
	RoleContractVariations,
	RoleCorrespondence,
	RolePaymentCertificates,
	RoleAdvancePayments,
	RoleRetention,
	RoleMaterialsOnSite,
	RoleEscalation,
	RoleSpecialItems,
	RoleCostForecasts,
	RoleCashflowForecasts,
}

// IsValid reports whether r is an assignable role.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// ClaimsAndCertificatesModule is the allow-list shared by payment
// certificate views and their nested transaction views.
var ClaimsAndCertificatesModule = []Role{
	RoleAdmin,
	RoleUser,
	RolePaymentCertificates,
	RoleRetention,
	RoleAdvancePayments,
	RoleMaterialsOnSite,
	RoleEscalation,
	RoleSpecialItems,
	RoleCashflowForecasts,
	RoleCostForecasts,
}

// RoleSet is a set of roles held by one user on one project.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from a slice of roles.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Contains reports whether the set holds the given role.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// IntersectsAllowList reports whether the set grants access to a view that
// accepts any of the given roles. RoleAdmin is implicitly part of every
// allow-list.
func (s RoleSet) IntersectsAllowList(allowed []Role) bool {
	if s.Contains(RoleAdmin) {
		return true
	}
	for _, r := range allowed {
		if s.Contains(r) {
			return true
		}
	}
	return false
}
