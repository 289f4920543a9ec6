package outbox

// Message is an outbox row appended after the state change it announces has
// committed. Delivery is best-effort: the worker relay reads pending rows and
// publishes them to the notification bus, retrying failed rows.
type Message struct {
	ID         string
	EventType  string
	Payload    []byte
	Status     string // pending, published, failed
	RetryCount int
}
