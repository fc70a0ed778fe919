package content

import "time"

// Item is a piece of editorial content: an article, an agenda entry or an
// announcement. EventID scopes it to one event; empty means standalone.
type Item struct {
	ID      string `json:"id" db:"id"`
	EventID string `json:"event_id,omitempty" db:"event_id"`

	Kind  Kind   `json:"kind" db:"kind"`
	Title string `json:"title" db:"title"`
	Body  string `json:"body,omitempty" db:"body"`

	Published bool `json:"published" db:"published"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Kind string

const (
	KindArticle      Kind = "article"
	KindAgenda       Kind = "agenda"
	KindAnnouncement Kind = "announcement"
)

func validKind(k Kind) bool {
	switch k {
	case KindArticle, KindAgenda, KindAnnouncement:
		return true
	default:
		return false
	}
}

type NewItem struct {
	EventID   string `json:"event_id,omitempty"`
	Kind      Kind   `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	Published bool   `json:"published"`
}

type Patch struct {
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

func (p Patch) apply(it Item) Item {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Body != nil {
		it.Body = *p.Body
	}
	if p.Published != nil {
		it.Published = *p.Published
	}
	return it
}
