package enums

import "fmt"

// AuditLogStatus records whether the audited action succeeded.
type AuditLogStatus string

const (
	AuditLogStatusSuccess AuditLogStatus = "SUCCESS"
	AuditLogStatusFailure AuditLogStatus = "FAILURE"
)

var validAuditLogStatuses = []AuditLogStatus{
	AuditLogStatusSuccess,
	AuditLogStatusFailure,
}

// IsValid reports whether the value is a known AuditLogStatus.
func (a AuditLogStatus) IsValid() bool {
	for _, candidate := range validAuditLogStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAuditLogStatus converts raw input into an AuditLogStatus.
func ParseAuditLogStatus(value string) (AuditLogStatus, error) {
	for _, candidate := range validAuditLogStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid audit log status %q", value)
}
