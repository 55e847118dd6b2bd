package contact

import (
	"errors"
	"testing"
)

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr bool
	}{
		{name: "full record", rec: Record{Name: "Alice", Email: "alice@example.com", Phone: "4695551234"}},
		{name: "empty phone", rec: Record{Name: "Bob", Email: "bob@example.com"}},
		{name: "empty name", rec: Record{Email: "anon@example.com", Phone: "2145558888"}},
		{name: "missing email", rec: Record{Name: "x", Phone: "2145558888"}, wantErr: true},
		{name: "ungrammatical email", rec: Record{Email: "bad@email"}, wantErr: true},
		{name: "short phone", rec: Record{Email: "a@example.com", Phone: "12345"}, wantErr: true},
		{name: "long phone", rec: Record{Email: "a@example.com", Phone: "12345678901"}, wantErr: true},
		{name: "signed phone", rec: Record{Email: "a@example.com", Phone: "+123456789"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Validate() error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestParsedRecordsValidate(t *testing.T) {
	lines := []string{
		"Alice Johnson <alice@example.com> , +1 (469) 555-1234",
		"Bob Roberts <bob[at]example.com> , 972-555-777",
		"Sara M. , sara@mail.co , 214 555 8888",
	}
	for _, line := range lines {
		r, ok := ParseLine(line)
		if !ok {
			t.Fatalf("ParseLine(%q) rejected", line)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("ParseLine(%q) produced invalid record: %v", line, err)
		}
	}
}
