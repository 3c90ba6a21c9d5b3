package settings

import (
	"strings"
	"testing"

	"github.com/example/datedir/internal/datedir/dateformat"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	records := []Record{
		Default("/home/test/Desktop"),
		{FolderPath: "/tmp/X", DateFormat: dateformat.ShortMonthDay, AutoStart: false, AutoCreateOnStartup: true},
		{FolderPath: `C:\Users\test\Desktop`, DateFormat: dateformat.FullISODate, AutoStart: true, AutoCreateOnStartup: false},
		{FolderPath: "/path with spaces/and \"quotes\"", DateFormat: dateformat.FullISODate},
	}

	for _, rec := range records {
		t.Run(rec.FolderPath, func(t *testing.T) {
			data, err := Encode(rec)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != rec {
				t.Fatalf("round trip mismatch: got %+v, want %+v", got, rec)
			}
		})
	}
}

func TestEncodeUsesPersistedKeys(t *testing.T) {
	data, err := Encode(Record{FolderPath: "/x", DateFormat: dateformat.ShortMonthDay, AutoStart: true})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, key := range []string{`"folder_path": "/x"`, `"date_format": "MMDD"`, `"auto_start": true`, `"auto_create_on_startup": false`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in %s", key, data)
		}
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "{{{"},
		{"unknown format", `{"folder_path":"/x","date_format":"DDMM","auto_start":true,"auto_create_on_startup":true}`},
		{"missing folder", `{"date_format":"MMDD","auto_start":true,"auto_create_on_startup":true}`},
		{"missing format", `{"folder_path":"/x","auto_start":true,"auto_create_on_startup":true}`},
		{"missing auto_start", `{"folder_path":"/x","date_format":"MMDD","auto_create_on_startup":true}`},
		{"missing auto_create", `{"folder_path":"/x","date_format":"MMDD","auto_start":true}`},
		{"wrong type", `{"folder_path":1,"date_format":"MMDD","auto_start":true,"auto_create_on_startup":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.input)); err == nil {
				t.Fatalf("expected error for %s", tt.input)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	rec := Default("")
	if rec.FolderPath != "." {
		t.Errorf("empty desktop should fall back to '.', got %q", rec.FolderPath)
	}
	if rec.DateFormat != dateformat.FullISODate || !rec.AutoStart || !rec.AutoCreateOnStartup {
		t.Errorf("unexpected defaults %+v", rec)
	}
}
