package types

// MailMessage is an internal mailbox message.
type MailMessage struct {
	ID        ID       `json:"id"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	From      string   `json:"sender_name"`
	FromEmail string   `json:"sender_email,omitempty"`
	To        []string `json:"recipients,omitempty"`
	Read      bool     `json:"is_read"`
	Folder    string   `json:"folder,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// ComposeMail is the body used to send a message.
type ComposeMail struct {
	Recipients []ID   `json:"recipient_ids"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}
