package metadata

import "sort"

// MemberSet groups member names by metadata type name. Duplicate adds
// collapse, so a component and its sidecar count once.
type MemberSet map[string]map[string]struct{}

// Add records a member under a type name.
func (ms MemberSet) Add(typeName, member string) {
	if ms[typeName] == nil {
		ms[typeName] = make(map[string]struct{})
	}
	ms[typeName][member] = struct{}{}
}

// TypeNames returns the type names with at least one member, sorted.
func (ms MemberSet) TypeNames() []string {
	names := make([]string, 0, len(ms))
	for n := range ms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Members returns the sorted members recorded for a type name.
func (ms MemberSet) Members(typeName string) []string {
	members := make([]string, 0, len(ms[typeName]))
	for m := range ms[typeName] {
		members = append(members, m)
	}
	sort.Strings(members)
	return members
}

// Len returns the total member count across all types.
func (ms MemberSet) Len() int {
	n := 0
	for _, members := range ms {
		n += len(members)
	}
	return n
}

// Changeset holds the two manifests derived from a diff: components to
// deploy and components to destroy.
type Changeset struct {
	Changes   MemberSet
	Deletions MemberSet
}

// NewChangeset returns an empty changeset.
func NewChangeset() *Changeset {
	return &Changeset{
		Changes:   make(MemberSet),
		Deletions: make(MemberSet),
	}
}

// AddChange records a classified addition or modification.
func (cs *Changeset) AddChange(c Classification) {
	cs.Changes.Add(c.Type.Name, c.Member)
}

// AddDeletion records a classified deletion.
func (cs *Changeset) AddDeletion(c Classification) {
	cs.Deletions.Add(c.Type.Name, c.Member)
}

// Empty reports whether the changeset holds no members at all.
func (cs *Changeset) Empty() bool {
	return cs.Changes.Len() == 0 && cs.Deletions.Len() == 0
}
