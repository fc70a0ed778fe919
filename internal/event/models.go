package event

import "time"

// Event is the container resource that owns guest, expense and audit
// sub-collections. Metadata here is ordinary record storage; the ledger
// invariants live in the guest/expense services.
type Event struct {
	ID      string `json:"id" db:"id"`
	OwnerID string `json:"owner_id" db:"owner_id"`

	Title       string `json:"title" db:"title"`
	Kind        Kind   `json:"kind" db:"kind"`
	Description string `json:"description,omitempty" db:"description"`
	Venue       string `json:"venue,omitempty" db:"venue"`

	StartsAt time.Time `json:"starts_at" db:"starts_at"`
	EndsAt   time.Time `json:"ends_at,omitempty" db:"ends_at"`

	BannerURL   string   `json:"banner_url,omitempty" db:"banner_url"`
	GalleryURLs []string `json:"gallery_urls,omitempty" db:"gallery_urls"`

	// KHQRPayload is the QR string rendered on the public page for digital
	// gifting. Opaque to this system.
	KHQRPayload string `json:"khqr_payload,omitempty" db:"khqr_payload"`

	// PINHash is the argon2id hash of the optional access PIN. Empty means
	// the public page is unlocked. Never serialized to clients.
	PINHash string `json:"-" db:"pin_hash"`

	Public bool `json:"public" db:"public"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Kind string

const (
	KindWedding Kind = "wedding"
	KindFuneral Kind = "funeral"
	KindMerit   Kind = "merit"
)

func validKind(k Kind) bool {
	switch k {
	case KindWedding, KindFuneral, KindMerit:
		return true
	default:
		return false
	}
}

// PINLocked reports whether public access requires a PIN.
func (e Event) PINLocked() bool { return e.PINHash != "" }

// NewEvent is the creation input.
type NewEvent struct {
	Title       string    `json:"title"`
	Kind        Kind      `json:"kind"`
	Description string    `json:"description,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at,omitempty"`
	KHQRPayload string    `json:"khqr_payload,omitempty"`
	Public      bool      `json:"public"`

	// PIN, when non-empty, locks the public page. Stored hashed.
	PIN string `json:"pin,omitempty"`
}

// Patch is a sparse metadata update; nil means "not supplied".
type Patch struct {
	Title       *string    `json:"title,omitempty"`
	Kind        *Kind      `json:"kind,omitempty"`
	Description *string    `json:"description,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	BannerURL   *string    `json:"banner_url,omitempty"`
	GalleryURLs *[]string  `json:"gallery_urls,omitempty"`
	KHQRPayload *string    `json:"khqr_payload,omitempty"`
	Public      *bool      `json:"public,omitempty"`
}

func (p Patch) apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Kind != nil {
		e.Kind = *p.Kind
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.StartsAt != nil {
		e.StartsAt = *p.StartsAt
	}
	if p.EndsAt != nil {
		e.EndsAt = *p.EndsAt
	}
	if p.BannerURL != nil {
		e.BannerURL = *p.BannerURL
	}
	if p.GalleryURLs != nil {
		e.GalleryURLs = *p.GalleryURLs
	}
	if p.KHQRPayload != nil {
		e.KHQRPayload = *p.KHQRPayload
	}
	if p.Public != nil {
		e.Public = *p.Public
	}
	return e
}

// PublicPage is the payload served to attendees: countdown, gallery and the
// gifting QR. PIN-locked events only expose the lock state until verified.
type PublicPage struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Kind             Kind     `json:"kind"`
	Description      string   `json:"description,omitempty"`
	Venue            string   `json:"venue,omitempty"`
	StartsAt         string   `json:"starts_at"`
	CountdownSeconds int64    `json:"countdown_seconds"`
	BannerURL        string   `json:"banner_url,omitempty"`
	GalleryURLs      []string `json:"gallery_urls,omitempty"`
	KHQRPayload      string   `json:"khqr_payload,omitempty"`
	PINLocked        bool     `json:"pin_locked"`
}
