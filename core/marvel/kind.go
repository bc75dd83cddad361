package marvel

import "fmt"

// Kind is an entity collection exposed by the API.
type Kind string

const (
	KindCharacters Kind = "characters"
	KindComics     Kind = "comics"
)

// Kinds lists every supported collection in pipeline order.
var Kinds = []Kind{KindCharacters, KindComics}

// Endpoint returns the collection path relative to the base URL.
func (k Kind) Endpoint() string {
	return "/" + string(k)
}

// ParseKind validates a user-supplied collection name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCharacters, KindComics:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown entity kind %q (want characters or comics)", s)
	}
}
