// Package catalog queries the remote update catalog for the latest revision of each identifier.
package catalog

import (
	"context"
	"errors"

	"github.com/conn-castle/modsync/internal/jsonval"
)

// ErrUnavailable reports a catalog that could not be reached or returned an unusable response.
var ErrUnavailable = errors.New("catalog unavailable")

// DefaultURL is the public catalog endpoint.
const DefaultURL = "http://api.paydaymods.com/updates/retrieve/"

// Entry is the catalog's record for one identifier.
type Entry struct {
	Name       jsonval.String `json:"name"`
	Date       jsonval.Time   `json:"date"`
	Author     jsonval.String `json:"author"`
	Revision   jsonval.String `json:"revision"`
	RevisionID jsonval.String `json:"revision_id"`
}

// Client looks up catalog entries. Identifiers the catalog does not know are
// absent from the returned map; they are not an error.
type Client interface {
	Query(ctx context.Context, identifiers []string) (map[string]Entry, error)
}

// Func adapts a function to the Client interface.
type Func func(ctx context.Context, identifiers []string) (map[string]Entry, error)

// Query calls f.
func (f Func) Query(ctx context.Context, identifiers []string) (map[string]Entry, error) {
	return f(ctx, identifiers)
}
