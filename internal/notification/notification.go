package notification

// Message is a single outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Mailer delivers a single message over some transport.
type Mailer interface {
	Send(msg Message) error
}
