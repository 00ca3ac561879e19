package models

// NotificationName is the message name of the generation email.
const NotificationName = "credential_generated"

// Recipient is who a notification is sent to.
type Recipient struct {
	LearnerID LearnerID `json:"lms_user_id"`
	Email     string    `json:"email_address"`
}

// Notification is published after a credential becomes available.
type Notification struct {
	Name      string            `json:"name"`
	Recipient Recipient         `json:"recipient"`
	Context   map[string]string `json:"context"`
	Language  string            `json:"language"`
}

// NewGeneratedNotification builds the message sent when a credential becomes available.
func NewGeneratedNotification(learner Learner, url, resourceName, platformName string) Notification {
	return Notification{
		Name:      NotificationName,
		Recipient: Recipient{LearnerID: learner.ID, Email: learner.Email},
		Context: map[string]string{
			"credential_link": url,
			"resource_name":   resourceName,
			"platform_name":   platformName,
		},
		Language: "en",
	}
}
