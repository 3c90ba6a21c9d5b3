package settings

import (
	"encoding/json"
	"fmt"

	"github.com/example/datedir/internal/datedir/dateformat"
)

// Record is the persisted and shared settings entity. It is always replaced wholesale.
type Record struct {
	FolderPath          string            `json:"folder_path"`
	DateFormat          dateformat.Format `json:"date_format"`
	AutoStart           bool              `json:"auto_start"`
	AutoCreateOnStartup bool              `json:"auto_create_on_startup"`
}

// Default returns the record used when nothing has been persisted yet.
func Default(desktopDir string) Record {
	if desktopDir == "" {
		desktopDir = "."
	}
	return Record{
		FolderPath:          desktopDir,
		DateFormat:          dateformat.FullISODate,
		AutoStart:           true,
		AutoCreateOnStartup: true,
	}
}

// Encode serialises a record in its persisted form.
func Encode(rec Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return append(data, '\n'), nil
}

type rawRecord struct {
	FolderPath          *string            `json:"folder_path"`
	DateFormat          *dateformat.Format `json:"date_format"`
	AutoStart           *bool              `json:"auto_start"`
	AutoCreateOnStartup *bool              `json:"auto_create_on_startup"`
}

// Decode parses the persisted form. Every field must be present; unknown date formats are
// rejected. Extra keys are ignored.
func Decode(data []byte) (Record, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("decode settings: %w", err)
	}
	switch {
	case raw.FolderPath == nil:
		return Record{}, fmt.Errorf("decode settings: missing field folder_path")
	case raw.DateFormat == nil:
		return Record{}, fmt.Errorf("decode settings: missing field date_format")
	case raw.AutoStart == nil:
		return Record{}, fmt.Errorf("decode settings: missing field auto_start")
	case raw.AutoCreateOnStartup == nil:
		return Record{}, fmt.Errorf("decode settings: missing field auto_create_on_startup")
	}
	return Record{
		FolderPath:          *raw.FolderPath,
		DateFormat:          *raw.DateFormat,
		AutoStart:           *raw.AutoStart,
		AutoCreateOnStartup: *raw.AutoCreateOnStartup,
	}, nil
}
