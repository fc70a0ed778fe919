package guest

import (
	"reflect"
	"testing"
)

func sampleGuests() []Guest {
	return []Guest{
		{ID: "1", Name: "Sok", Location: "Hall 1", PaymentMethod: "cash", Note: "bride side"},
		{ID: "2", Name: "Dara", Location: "Hall 2", PaymentMethod: "ABA Bank"},
		{ID: "3", Name: "Vanna", Location: "Hall 1", PaymentMethod: "Wing"},
		{ID: "4", Name: "Sokha", Location: "", PaymentMethod: "cash"},
	}
}

func names(gs []Guest) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.Name)
	}
	return out
}

func TestFilter_AllPredicatesAreANDed(t *testing.T) {
	got := Filter(sampleGuests(), "", ChannelBank, "Hall 2")
	if !reflect.DeepEqual(names(got), []string{"Dara"}) {
		t.Fatalf("expected [Dara], got %v", names(got))
	}
}

func TestFilter_QueryMatchesNameNoteLocation(t *testing.T) {
	gs := sampleGuests()

	if got := names(Filter(gs, "sok", ChannelAll, LocationAll)); !reflect.DeepEqual(got, []string{"Sok", "Sokha"}) {
		t.Fatalf("name substring: got %v", got)
	}
	if got := names(Filter(gs, "BRIDE", ChannelAll, LocationAll)); !reflect.DeepEqual(got, []string{"Sok"}) {
		t.Fatalf("note substring, case-insensitive: got %v", got)
	}
	if got := names(Filter(gs, "hall 2", ChannelAll, LocationAll)); !reflect.DeepEqual(got, []string{"Dara"}) {
		t.Fatalf("location substring: got %v", got)
	}
}

func TestFilter_CashChannelIsExact(t *testing.T) {
	gs := []Guest{
		{Name: "a", PaymentMethod: "cash"},
		{Name: "b", PaymentMethod: "Cash"}, // capital C is NOT cash
	}
	if got := names(Filter(gs, "", ChannelCash, LocationAll)); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("cash must match exactly, got %v", got)
	}
	if got := names(Filter(gs, "", ChannelBank, LocationAll)); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("non-cash spellings are bank, got %v", got)
	}
}

func TestLocations_SortedDistinctNonBlank(t *testing.T) {
	gs := append(sampleGuests(), Guest{Name: "x", Location: "   "})
	got := Locations(gs)
	want := []string{"Hall 1", "Hall 2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
