// Package model holds the domain entities shared by the repository,
// service, and handler layers.
package model

// User is a single profile record keyed by its caller-supplied UserID.
//
// Preferences is an opaque JSON document: the application stores and
// returns it verbatim and never inspects its contents.
type User struct {
	UserID      int64          `json:"user_id"`
	Name        string         `json:"name"`
	Age         int            `json:"age"`
	Location    string         `json:"location"`
	Gender      string         `json:"gender"`
	Preferences map[string]any `json:"preferences"`
	VideoClip   string         `json:"video_clip"`
}

// UserFilter holds the optional list predicates. A nil field imposes no
// constraint; all supplied predicates are combined with AND.
//
// Location and Gender are exact string matches. MinAge and MaxAge are
// inclusive bounds on Age.
type UserFilter struct {
	Location *string
	MinAge   *int
	MaxAge   *int
	Gender   *string
}
