package models

// Categories assigned by the classification cascade. Every classified record
// carries one of these or CategoryUncategorised.
const (
	CategoryIT             = "IT"
	CategoryConsultancy    = "Consultancy"
	CategoryConstruction   = "Construction"
	CategoryOperations     = "Operations"
	CategoryLegal          = "Legal"
	CategoryHRStaffing     = "HR/Staffing"
	CategoryGrants         = "Grants"
	CategoryAdministrative = "Administrative"

	// CategoryUncategorised is the fallback for records no tier matched.
	CategoryUncategorised = "Uncategorised"
)

// Departments with known source schemas.
const (
	DepartmentHMRC       = "HMRC"
	DepartmentHomeOffice = "Home Office"
	DepartmentDfT        = "DfT"
)

// Anomaly types.
const (
	AnomalyHighPayment        = "high_payment"
	AnomalyDuplicatePattern   = "duplicate_pattern"
	AnomalyConcentrationSpend = "supplier_concentration_spend"
	AnomalyConcentrationTxn   = "supplier_concentration_txn"
)

// Anomaly severities, in ascending order of urgency.
const (
	SeverityInfo   = "info"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)
