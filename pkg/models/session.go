package models

import "time"

// SessionEntry is the view of a stored session image.
type SessionEntry struct {
	ID             string
	Image          Image
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// OCRResultEntry is the view of a stored OCR result. It never changes after creation.
type OCRResultEntry struct {
	ID        string
	Text      string
	CreatedAt time.Time
}
