package domain

import "time"

// Comment is a free-text entry on a ticket's thread, optionally carrying an
// opaque attachment reference. Upload handling lives outside this service.
type Comment struct {
	ID         string
	TicketID   string
	AuthorID   string
	Body       string
	Attachment *string
	CreatedAt  time.Time

	Author *AccountRef
}
