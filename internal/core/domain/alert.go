package domain

// AlertType categorizes a threshold-breach notice.
type AlertType string

const (
	AlertLowStock      AlertType = "low_stock"
	AlertHighDebt      AlertType = "high_debt"
	AlertMissingKYC    AlertType = "missing_kyc"
	AlertRateThreshold AlertType = "rate_threshold"
	AlertCustom        AlertType = "custom"
)

// AlertSeverity ranks how urgently an alert needs attention.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is an append-only notice for the dashboard. Emission is
// deduplicated: no new alert is written while an unread alert of the same
// type and entity exists.
type Alert struct {
	AlertID    string        `json:"alertID"` // Primary Key (UUID)
	Type       AlertType     `json:"type"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	EntityID   string        `json:"entityID"`
	EntityType string        `json:"entityType"` // e.g., "currency", "client", "transaction"
	Severity   AlertSeverity `json:"severity"`
	IsRead     bool          `json:"isRead"`
	AuditFields
}
