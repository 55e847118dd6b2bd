package contact

import (
	"reflect"
	"testing"
)

func TestDedupe_CaseInsensitive(t *testing.T) {
	// Given records whose emails differ only by case
	in := []Record{
		{Name: "Alice", Email: "Alice@Example.com", Phone: "123"},
		{Name: "Duplicate", Email: "alice@example.COM", Phone: "999"},
		{Name: "Bob", Email: "bob@example.com", Phone: "111"},
	}

	// When deduplicated
	got := Dedupe(in)

	// Then only the first occurrence of each email survives, in order
	want := []Record{
		{Name: "Alice", Email: "Alice@Example.com", Phone: "123"},
		{Name: "Bob", Email: "bob@example.com", Phone: "111"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dedupe() = %+v, want %+v", got, want)
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	in := []Record{
		{Name: "a", Email: "a@example.com"},
		{Name: "b", Email: "B@example.com"},
		{Name: "a2", Email: "A@EXAMPLE.COM"},
		{Name: "c", Email: "c@example.com"},
		{Name: "b2", Email: "b@example.com"},
		{Name: "a3", Email: "a@example.com"},
	}

	once := Dedupe(in)
	twice := Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Dedupe(Dedupe(x)) = %+v, want %+v", twice, once)
	}
	if len(once) != 3 {
		t.Errorf("Dedupe() len = %d, want 3", len(once))
	}
}

func TestDedupe_DoesNotModifyInput(t *testing.T) {
	in := []Record{
		{Name: "x", Email: "x@example.com"},
		{Name: "y", Email: "X@example.com"},
	}
	snapshot := append([]Record(nil), in...)

	_ = Dedupe(in)

	if !reflect.DeepEqual(in, snapshot) {
		t.Errorf("input modified: %+v, want %+v", in, snapshot)
	}
}

func TestDedupe_Empty(t *testing.T) {
	if got := Dedupe(nil); len(got) != 0 {
		t.Errorf("Dedupe(nil) = %+v, want empty", got)
	}
}

func TestRecordKey(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{a: "Alice@Example.com", b: "alice@example.COM", same: true},
		{a: "bob@example.com", b: "bob@example.com", same: true},
		{a: "bob@example.com", b: "rob@example.com", same: false},
	}
	for _, tt := range tests {
		ka := Record{Email: tt.a}.Key()
		kb := Record{Email: tt.b}.Key()
		if (ka == kb) != tt.same {
			t.Errorf("Key(%q) == Key(%q) is %v, want %v", tt.a, tt.b, ka == kb, tt.same)
		}
	}
}
