package delivery

import (
	"sort"
	"strings"

	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

// KnownSet is the set of class short names a client reports as cached.
type KnownSet map[string]struct{}

var _ interfaces.KnownClasses = KnownSet(nil)

// NewKnownSet builds a set from short names. Blank entries are ignored.
func NewKnownSet(shortNames ...string) KnownSet {
	set := make(KnownSet, len(shortNames))
	for _, name := range shortNames {
		if name = strings.TrimSpace(name); name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

func (k KnownSet) Has(shortName string) bool {
	_, ok := k[shortName]
	return ok
}

// Names returns the members sorted.
func (k KnownSet) Names() []string {
	out := make([]string, 0, len(k))
	for name := range k {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
