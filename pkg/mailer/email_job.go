package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Raw ticket values travel only inside the Text/HTML body (embedded in a
// link); they are never persisted anywhere else.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}
