package domain

// Capability defines the types of operations a client may perform on a resource path.
type Capability string

const (
	// ReadCapability allows listing and reading subscriptions.
	ReadCapability Capability = "read"

	// WriteCapability allows registering and updating subscriptions.
	WriteCapability Capability = "write"

	// DeleteCapability allows removing subscriptions.
	DeleteCapability Capability = "delete"

	// TriggerCapability allows dispatching an event to every subscriber.
	TriggerCapability Capability = "trigger"
)

// Capabilities lists every capability a policy may grant.
var Capabilities = []Capability{ReadCapability, WriteCapability, DeleteCapability, TriggerCapability}
