package conduit

import (
	"encoding/json"
	"time"
)

// TimeLayout is the timestamp format used on the wire (ISO 8601, UTC,
// millisecond precision).
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a time.Time that marshals using TimeLayout.
type Timestamp time.Time

// NewTimestamp converts t to a Timestamp.
func NewTimestamp(t time.Time) Timestamp { return Timestamp(t) }

// Time returns the underlying time.
func (t Timestamp) Time() time.Time { return time.Time(t) }

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(TimeLayout))
}

// UnmarshalJSON accepts TimeLayout as well as any RFC 3339 timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// User is the authenticated user representation.
type User struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// Profile is a public user representation. Following is relative to the
// viewer.
type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// Article is an article representation. Favorited and Author.Following are
// relative to the viewer.
type Article struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      Timestamp `json:"createdAt"`
	UpdatedAt      Timestamp `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int       `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

// Comment is a comment representation.
type Comment struct {
	ID        int64     `json:"id"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
	Body      string    `json:"body"`
	Author    Profile   `json:"author"`
}
