package enums

import "fmt"

// ChallengeStatus maps to the challenge_status_enum type in Postgres.
type ChallengeStatus string

const (
	ChallengeStatusPending   ChallengeStatus = "pending"
	ChallengeStatusAccepted  ChallengeStatus = "accepted"
	ChallengeStatusCompleted ChallengeStatus = "completed"
	ChallengeStatusFailed    ChallengeStatus = "failed"
	ChallengeStatusExpired   ChallengeStatus = "expired"
	ChallengeStatusCancelled ChallengeStatus = "cancelled"
)

var validChallengeStatuses = []ChallengeStatus{
	ChallengeStatusPending,
	ChallengeStatusAccepted,
	ChallengeStatusCompleted,
	ChallengeStatusFailed,
	ChallengeStatusExpired,
	ChallengeStatusCancelled,
}

// String implements fmt.Stringer.
func (s ChallengeStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ChallengeStatus.
func (s ChallengeStatus) IsValid() bool {
	for _, candidate := range validChallengeStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a challenge in this status can never transition again.
func (s ChallengeStatus) IsTerminal() bool {
	switch s {
	case ChallengeStatusCompleted, ChallengeStatusFailed, ChallengeStatusExpired, ChallengeStatusCancelled:
		return true
	}
	return false
}

// ParseChallengeStatus converts raw input into a ChallengeStatus.
func ParseChallengeStatus(value string) (ChallengeStatus, error) {
	for _, candidate := range validChallengeStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid challenge status %q", value)
}
