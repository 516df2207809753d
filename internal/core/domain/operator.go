package domain

// Operator is a staff login for the admin dashboard and mobile app.
type Operator struct {
	OperatorID   string `json:"operatorID"` // Primary Key (UUID)
	Username     string `json:"username"`   // Unique
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
