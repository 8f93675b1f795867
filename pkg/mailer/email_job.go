package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is recommended as fallback.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeJob builds the welcome email sent after a successful registration.
func WelcomeJob(to, name string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to your todo list",
		Text: "Hi " + name + ",\n\n" +
			"Your account is ready. Log in and start adding tasks.\n",
		HTML: "<p>Hi " + name + ",</p>" +
			"<p>Your account is ready. Log in and start adding tasks.</p>",
	}
}
