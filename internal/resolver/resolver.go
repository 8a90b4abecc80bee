package resolver

import (
	"github.com/goliatone/go-widgetkit/internal/classes"
	"github.com/goliatone/go-widgetkit/internal/widgets"
)

// Resolver computes the ordered set of widget classes an instance tree
// needs on the client.
type Resolver struct {
	registry *classes.Registry
}

// New constructs a resolver reading inheritance edges from registry.
func New(registry *classes.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve walks the eager part of the tree rooted at root. Each class appears
// once, after every other member of the set it inherits from, and the root's
// class comes after the classes of its eager subtree.
func (r *Resolver) Resolve(root *widgets.Instance) ([]*classes.Class, error) {
	if root == nil {
		return nil, nil
	}

	var walked []*classes.Class
	seen := map[string]struct{}{}
	var walk func(inst *widgets.Instance)
	walk = func(inst *widgets.Instance) {
		for _, agg := range inst.Eager() {
			walk(agg.Instance)
		}
		class := inst.Class()
		if _, dup := seen[class.Name()]; dup {
			return
		}
		seen[class.Name()] = struct{}{}
		walked = append(walked, class)
	}
	walk(root)

	return r.ancestorsFirst(walked)
}

// ancestorsFirst keeps the walk order but pulls any in-set ancestor of a
// class in front of it.
func (r *Resolver) ancestorsFirst(set []*classes.Class) ([]*classes.Class, error) {
	members := make(map[string]struct{}, len(set))
	for _, class := range set {
		members[class.Name()] = struct{}{}
	}

	ordered := make([]*classes.Class, 0, len(set))
	emitted := make(map[string]struct{}, len(set))
	for _, class := range set {
		if _, done := emitted[class.Name()]; done {
			continue
		}
		chain, err := r.registry.Ancestors(class)
		if err != nil {
			return nil, err
		}
		for i := len(chain) - 1; i >= 0; i-- {
			ancestor := chain[i]
			if _, member := members[ancestor.Name()]; !member {
				continue
			}
			if _, done := emitted[ancestor.Name()]; done {
				continue
			}
			emitted[ancestor.Name()] = struct{}{}
			ordered = append(ordered, ancestor)
		}
		emitted[class.Name()] = struct{}{}
		ordered = append(ordered, class)
	}
	return ordered, nil
}
