package notify

// LiveMessage is one envelope for the live UI channel. User 0 means
// broadcast to every connection in the group.
type LiveMessage struct {
	Group string
	User  uint
	Data  map[string]any
}

// SlackMessage is a flattened key/value payload for the chat webhook.
type SlackMessage struct {
	Event  string
	Data   map[string]any
	Ticket bool
}

// EmailMessage is a templated notification to a single recipient.
type EmailMessage struct {
	To         string
	Subject    string
	Body       string
	ActionText string
	ActionURL  string
}

// Event is the result of one lifecycle transition: everything the
// fan-out should attempt after the state change has been persisted.
// Delivery is best-effort and never reported back to the caller.
type Event struct {
	Name  string
	Live  []LiveMessage
	Slack *SlackMessage
	Email *EmailMessage
}

// Sink delivers live-update envelopes to registered connections.
// Messages to groups or users with no registered connection are
// silently dropped; there is no queue and no retry.
type Sink interface {
	Publish(user uint, group string, data map[string]any)
	Broadcast(group string, data map[string]any)
}
