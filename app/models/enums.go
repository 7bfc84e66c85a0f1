package models

// Category defines the four fixed maturity domains every question belongs to.
type Category string

const (
	Governance   Category = "Governance"
	Monitoring   Category = "Monitoring & Control"
	Technology   Category = "Technology"
	Organization Category = "Organization"
)

// CategoryOrder is the canonical display order used by results and radar output.
var CategoryOrder = []Category{Governance, Monitoring, Technology, Organization}

// IsValidCategory reports whether s is one of the four maturity domains.
func IsValidCategory(s string) bool {
	switch Category(s) {
	case Governance, Monitoring, Technology, Organization:
		return true
	}
	return false
}

// Role defines the possible user roles.
type Role string

const (
	AdminRole Role = "admin"
	UserRole  Role = "user"
)
