package changes

import "strings"

const (
	CategoryNetwork     = "Network"
	CategoryIdentity    = "Identity"
	CategoryEndpoint    = "Endpoint"
	CategoryApplication = "Application"
	CategoryVendor      = "Vendor"
	CategoryOther       = "Other"
)

const (
	ImpactLow    = "Low"
	ImpactMedium = "Medium"
	ImpactHigh   = "High"
)

const (
	UserImpactNone = "None"
	UserImpactSome = "Some"
	UserImpactMany = "Many"
)

const (
	StatusPlanned    = "Planned"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusRolledBack = "Rolled Back"
	StatusFailed     = "Failed"
)

// Maintenance window radio options as the backend reads them.
const (
	MaintenanceWindowYes = "true"
	MaintenanceWindowNo  = "false"
)

var (
	Categories   = []string{CategoryNetwork, CategoryIdentity, CategoryEndpoint, CategoryApplication, CategoryVendor, CategoryOther}
	ImpactLevels = []string{ImpactLow, ImpactMedium, ImpactHigh}
	UserImpacts  = []string{UserImpactNone, UserImpactSome, UserImpactMany}
	Statuses     = []string{StatusPlanned, StatusInProgress, StatusCompleted, StatusRolledBack, StatusFailed}
)

// NormalizeCategory maps case variants (e.g. "NETWORK") onto the canonical
// spelling. Unknown values are returned unchanged.
func NormalizeCategory(raw string) string { return normalize(raw, Categories) }

// NormalizeImpact maps case variants onto Low/Medium/High.
func NormalizeImpact(raw string) string { return normalize(raw, ImpactLevels) }

// NormalizeUserImpact maps case variants onto None/Some/Many.
func NormalizeUserImpact(raw string) string { return normalize(raw, UserImpacts) }

// NormalizeStatus maps case variants onto the canonical status names.
func NormalizeStatus(raw string) string { return normalize(raw, Statuses) }

func normalize(raw string, canonical []string) string {
	for _, candidate := range canonical {
		if raw == candidate || strings.ToUpper(raw) == strings.ToUpper(candidate) {
			return candidate
		}
	}
	return raw
}
