package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateFriendChallenge     OutboxAggregateType = "friend_challenge"
	AggregateCurrencyTransaction OutboxAggregateType = "currency_transaction"
	AggregateUser                OutboxAggregateType = "user"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateFriendChallenge,
	AggregateCurrencyTransaction,
	AggregateUser,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventChallengeCreated   OutboxEventType = "challenge_created"
	EventChallengeAccepted  OutboxEventType = "challenge_accepted"
	EventChallengeRejected  OutboxEventType = "challenge_rejected"
	EventChallengeCancelled OutboxEventType = "challenge_cancelled"
	EventChallengeSettled   OutboxEventType = "challenge_settled"
	EventChallengeExpired   OutboxEventType = "challenge_expired"
)

var validOutboxEventTypes = []OutboxEventType{
	EventChallengeCreated,
	EventChallengeAccepted,
	EventChallengeRejected,
	EventChallengeCancelled,
	EventChallengeSettled,
	EventChallengeExpired,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
