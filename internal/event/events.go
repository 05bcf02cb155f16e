package event

import "time"

const (
	// RoutingKeyAccountCreated carries the communication request emitted when
	// an account is created.
	RoutingKeyAccountCreated = "account.created"

	// RoutingKeyCommunicationSent carries the acknowledgment produced by the
	// message service once the communication side effects are done.
	RoutingKeyCommunicationSent = "communication.sent"
)

// AccountMessage is the transit-only payload of the communication flow. It is
// never persisted; it exists only on the wire between services.
type AccountMessage struct {
	AccountNumber int64  `json:"accountNumber"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	MobileNumber  string `json:"mobileNumber"`
}

type AccountCreatedEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Payload   AccountMessage `json:"payload"`
}

type CommunicationSentEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	AccountNumber int64     `json:"accountNumber"`
}
