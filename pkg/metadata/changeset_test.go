package metadata

import (
	"reflect"
	"testing"
)

func TestMemberSetCollapsesDuplicates(t *testing.T) {
	ms := make(MemberSet)
	ms.Add("ApexClass", "Foo")
	ms.Add("ApexClass", "Foo")
	ms.Add("ApexClass", "Bar")

	if ms.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", ms.Len())
	}
	if got := ms.Members("ApexClass"); !reflect.DeepEqual(got, []string{"Bar", "Foo"}) {
		t.Errorf("Members() = %v, expected sorted [Bar Foo]", got)
	}
}

func TestMemberSetOrdering(t *testing.T) {
	ms := make(MemberSet)
	ms.Add("Workflow", "W1")
	ms.Add("ApexClass", "Foo")
	ms.Add("Layout", "L1")

	if got := ms.TypeNames(); !reflect.DeepEqual(got, []string{"ApexClass", "Layout", "Workflow"}) {
		t.Errorf("TypeNames() = %v, expected sorted type names", got)
	}
}

func TestChangesetEmpty(t *testing.T) {
	cs := NewChangeset()
	if !cs.Empty() {
		t.Error("new changeset should be empty")
	}

	cs.AddChange(Classification{Type: Type{Name: "ApexClass"}, Member: "Foo"})
	if cs.Empty() {
		t.Error("changeset with a change should not be empty")
	}

	cs = NewChangeset()
	cs.AddDeletion(Classification{Type: Type{Name: "ApexTrigger"}, Member: "Old"})
	if cs.Empty() {
		t.Error("changeset with a deletion should not be empty")
	}
	if cs.Changes.Len() != 0 {
		t.Error("deletion must not leak into changes")
	}
}
