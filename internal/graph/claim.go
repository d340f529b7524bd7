package graph

// claimPool hands out records by subject name, each at most once
type claimPool[T any] struct {
	items   []T
	claimed []bool
	byName  map[string][]int
	names   []string
}

func newClaimPool[T any](items []T, name func(T) string) *claimPool[T] {
	p := &claimPool[T]{
		items:   items,
		claimed: make([]bool, len(items)),
		byName:  make(map[string][]int),
		names:   make([]string, len(items)),
	}
	for i, item := range items {
		n := normalizeName(name(item))
		p.names[i] = n
		p.byName[n] = append(p.byName[n], i)
	}
	return p
}

// claimAll takes every unclaimed record filed under name, in input order
func (p *claimPool[T]) claimAll(name string) []T {
	var out []T
	for _, i := range p.byName[normalizeName(name)] {
		if !p.claimed[i] {
			p.claimed[i] = true
			out = append(out, p.items[i])
		}
	}
	return out
}

// claimFirst takes the first unclaimed record filed under name
func (p *claimPool[T]) claimFirst(name string) (T, bool) {
	for _, i := range p.byName[normalizeName(name)] {
		if !p.claimed[i] {
			p.claimed[i] = true
			return p.items[i], true
		}
	}
	var zero T
	return zero, false
}

// unclaimed returns the distinct names no record of which was ever claimed,
// first seen first. Leftover duplicates of a claimed name are not reported.
func (p *claimPool[T]) unclaimed() []string {
	taken := make(map[string]bool)
	for i, n := range p.names {
		if p.claimed[i] {
			taken[n] = true
		}
	}
	var names []string
	for _, n := range p.names {
		if taken[n] {
			continue
		}
		taken[n] = true
		names = append(names, n)
	}
	return names
}
