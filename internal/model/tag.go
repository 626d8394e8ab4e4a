package model

// TagOrder selects how a user's tags are sorted.
type TagOrder string

const (
	TagOrderUsage TagOrder = "usage"
	TagOrderName  TagOrder = "name"
)

// ParseTagOrder returns the order matching s, defaulting to usage.
func ParseTagOrder(s string) (TagOrder, bool) {
	switch TagOrder(s) {
	case "", TagOrderUsage:
		return TagOrderUsage, true
	case TagOrderName:
		return TagOrderName, true
	default:
		return "", false
	}
}

type Tag struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	ImageCount int    `json:"image_count"`
}
