package domain

import "time"

// Media records one uploaded image. ImagePath is the public URL under which
// the file is served; the raw bytes live in the file store under Locator.
type Media struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	OwnerID     string    `json:"ownerId,omitempty"`
	ImagePath   string    `json:"imagePath"`
	Locator     string    `json:"-"`
	ContentType string    `json:"contentType,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
