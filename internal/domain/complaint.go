package domain

import (
	"fmt"
	"strings"
	"time"
)

// ComplaintStatus enumerates triage states for complaints.
// Any status may move to any other status.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "Pending"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
)

// ComplaintStatuses lists every status in display order.
var ComplaintStatuses = []ComplaintStatus{
	ComplaintStatusPending,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
}

// ParseComplaintStatus matches a status name case-insensitively.
func ParseComplaintStatus(raw string) (ComplaintStatus, error) {
	trimmed := strings.TrimSpace(raw)
	for _, status := range ComplaintStatuses {
		if strings.EqualFold(string(status), trimmed) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// ComplaintIDPrefix prefixes every complaint identifier.
const ComplaintIDPrefix = "CMPT-"

// FormatComplaintID renders a sequence number as CMPT-NNN.
func FormatComplaintID(seq int64) string {
	return fmt.Sprintf("%s%03d", ComplaintIDPrefix, seq)
}

// ParseComplaintSequence extracts the numeric part of a complaint id.
func ParseComplaintSequence(id string) (int64, bool) {
	if len(id) <= len(ComplaintIDPrefix) || !strings.EqualFold(id[:len(ComplaintIDPrefix)], ComplaintIDPrefix) {
		return 0, false
	}
	var seq int64
	for _, ch := range id[len(ComplaintIDPrefix):] {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		seq = seq*10 + int64(ch-'0')
	}
	return seq, true
}

// Location pins a complaint. Coordinates are stored but not interpreted.
type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

// Complaint is a citizen-filed issue report.
type Complaint struct {
	ID          string
	Title       string
	Description string
	Location    Location
	ImageURL    *string
	Status      ComplaintStatus
	UserID      string
	// UserEmail is copied from the owner at submission and never resynced.
	UserEmail string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComplaintDraft carries the caller-supplied fields of a new complaint.
type ComplaintDraft struct {
	Title       string
	Description string
	Location    Location
	ImageURL    *string
	UserID      string
	UserEmail   string
}
