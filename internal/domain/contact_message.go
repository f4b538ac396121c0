package domain

import "time"

// ContactMessage is an inquiry submitted through the contact page.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
