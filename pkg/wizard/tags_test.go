package wizard

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTagListAddSystems(t *testing.T) {
	list := NewTagList(TagSystems)
	for i, value := range []string{"db-01", "  db-02  ", "app-01"} {
		added, err := list.Add(value)
		if err != nil || !added {
			t.Fatalf("Add(%q) = %v, %v", value, added, err)
		}
		if list.Len() != i+1 {
			t.Fatalf("length after %q = %d", value, list.Len())
		}
	}
	for _, value := range []string{"", "   ", "db-01", " db-02"} {
		added, err := list.Add(value)
		if err != nil || added {
			t.Fatalf("Add(%q) should be ignored, got %v, %v", value, added, err)
		}
	}
	if diff := cmp.Diff([]string{"db-01", "db-02", "app-01"}, list.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestTagListRejectsNonLinks(t *testing.T) {
	list := NewTagList(TagLinks)
	for _, value := range []string{"ftp://files", "www.example.com", "HTTP://upper", "see https://x"} {
		added, err := list.Add(value)
		if added || !errors.Is(err, ErrInvalidLink) {
			t.Fatalf("Add(%q) = %v, %v; want ErrInvalidLink", value, added, err)
		}
	}
	if list.Len() != 0 {
		t.Fatalf("rejected links were stored: %v", list.Values())
	}
	if added, err := list.Add(" https://runbook.example "); !added || err != nil {
		t.Fatalf("valid link refused: %v", err)
	}
	if added, err := list.Add("https://runbook.example"); added || err != nil {
		t.Fatalf("duplicate link = %v, %v", added, err)
	}
}

func TestTagListRemovePreservesOrder(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for i := 0; i < n; i++ {
			list := NewTagList(TagSystems)
			var want []string
			for j := 0; j < n; j++ {
				value := fmt.Sprintf("host-%d", j)
				_, _ = list.Add(value)
				if j != i {
					want = append(want, value)
				}
			}
			if err := list.Remove(i); err != nil {
				t.Fatalf("Remove(%d) of %d: %v", i, n, err)
			}
			if want == nil {
				want = []string{}
			}
			if diff := cmp.Diff(want, list.Values()); diff != "" {
				t.Fatalf("Remove(%d) of %d mismatch (-want +got):\n%s", i, n, diff)
			}
		}
	}

	list := NewTagList(TagSystems)
	_, _ = list.Add("only")
	for _, index := range []int{-1, 1} {
		if err := list.Remove(index); !errors.Is(err, ErrTagIndex) {
			t.Fatalf("Remove(%d) = %v", index, err)
		}
	}
	if list.Len() != 1 {
		t.Fatalf("out of range removal changed the list")
	}
}

func TestTagListChipsTruncateLinks(t *testing.T) {
	long := "https://example.com/" + strings.Repeat("a", 40)
	links := NewTagList(TagLinks)
	_, _ = links.Add(long)
	_, _ = links.Add("https://short.example")

	chips := links.Chips()
	if chips[0].Label != long[:50]+"..." {
		t.Fatalf("long label = %q", chips[0].Label)
	}
	if chips[0].Value != long {
		t.Fatalf("chip value was truncated")
	}
	if chips[1].Label != "https://short.example" || chips[1].Index != 1 {
		t.Fatalf("short chip = %+v", chips[1])
	}

	systems := NewTagList(TagSystems)
	host := strings.Repeat("h", 60)
	_, _ = systems.Add(host)
	if systems.Chips()[0].Label != host {
		t.Fatalf("system chips must not be truncated")
	}
}

func TestTagListResetFiltersValues(t *testing.T) {
	links := NewTagList(TagLinks)
	links.Reset([]string{"https://a", "", "nope", "https://a", "http://b"})
	if diff := cmp.Diff([]string{"https://a", "http://b"}, links.Values()); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
}
