package folder

import (
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/example/datedir/internal/datedir/dateformat"
	"github.com/example/datedir/internal/datedir/domain"
	"github.com/example/datedir/internal/datedir/opener"
	"github.com/example/datedir/internal/datedir/settings"
	"github.com/example/datedir/internal/datedir/storage"
	"github.com/example/datedir/internal/datedir/validator"
)

// Status describes today's folder as seen by the surfaces.
type Status struct {
	Exists bool   `json:"exists"`
	Path   string `json:"path"`
}

// Lifecycle derives, creates, inspects and opens dated folders. It holds no settings of its
// own: every call receives the record to act on, so results always reflect the live settings.
type Lifecycle struct {
	storage   *storage.Storage
	validator *validator.Validator
	opener    opener.Opener
	now       func() time.Time
	logger    *slog.Logger
}

// New creates a new Lifecycle.
func New(storage *storage.Storage, validator *validator.Validator, opener opener.Opener, logger *slog.Logger) *Lifecycle {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Lifecycle{
		storage:   storage,
		validator: validator,
		opener:    opener,
		now:       time.Now,
		logger:    logger,
	}
}

// SetNow allows overriding the clock for testing.
func (l *Lifecycle) SetNow(now func() time.Time) {
	if now == nil {
		l.now = time.Now
		return
	}
	l.now = now
}

// Today returns the current local calendar date as seen by the lifecycle's clock.
func (l *Lifecycle) Today() time.Time {
	return l.now()
}

// PathForDate computes the dated folder path. It performs no I/O.
func (l *Lifecycle) PathForDate(rec settings.Record, date time.Time) string {
	return filepath.Join(rec.FolderPath, dateformat.FormatDate(date, rec.DateFormat))
}

// CreateForDate creates the dated folder if needed and returns its path. An existing folder is
// returned untouched.
func (l *Lifecycle) CreateForDate(rec settings.Record, date time.Time) (string, error) {
	if err := l.validator.ValidatePath(rec.FolderPath); err != nil {
		return "", err
	}

	target := l.PathForDate(rec, date)
	if exists, err := l.storage.Exists(target); err != nil {
		return "", domain.FileSystem("cannot inspect folder", err)
	} else if exists {
		l.logger.Debug("dated folder already exists", "path", target)
		return target, nil
	}

	if err := l.storage.MkdirAll(target, 0o755); err != nil {
		return "", domain.FileSystem("cannot create folder", err)
	}

	l.logger.Info("dated folder created", "path", target)
	return target, nil
}

// ExistsForDate reports whether the dated folder exists and is a directory. It never creates
// anything and treats inspection errors as absence.
func (l *Lifecycle) ExistsForDate(rec settings.Record, date time.Time) bool {
	return l.storage.IsDir(l.PathForDate(rec, date))
}

// ValidatePath checks that candidate exists, is a directory and is writable.
func (l *Lifecycle) ValidatePath(candidate string) error {
	return l.validator.ValidatePath(candidate)
}

// Open reveals path in the native file manager without waiting for it to exit.
func (l *Lifecycle) Open(path string) error {
	exists, err := l.storage.Exists(path)
	if err != nil {
		return domain.FileSystem("cannot inspect folder", err)
	}
	if !exists {
		return domain.InvalidPath("folder does not exist")
	}
	if err := l.opener.Open(path); err != nil {
		return domain.FileSystem("cannot launch file manager", err)
	}
	l.logger.Info("folder opened", "path", path)
	return nil
}

// CreateToday creates today's folder.
func (l *Lifecycle) CreateToday(rec settings.Record) (string, error) {
	return l.CreateForDate(rec, l.now())
}

// TodayExists reports whether today's folder exists.
func (l *Lifecycle) TodayExists(rec settings.Record) bool {
	return l.ExistsForDate(rec, l.now())
}

// TodayPath returns today's folder path.
func (l *Lifecycle) TodayPath(rec settings.Record) string {
	return l.PathForDate(rec, l.now())
}

// TodayStatus reports existence and path of today's folder from a single clock reading, so a
// call straddling midnight cannot mix two dates.
func (l *Lifecycle) TodayStatus(rec settings.Record) Status {
	today := l.now()
	return Status{
		Exists: l.ExistsForDate(rec, today),
		Path:   l.PathForDate(rec, today),
	}
}

// OpenTarget picks what to open when no explicit path was given: today's folder when it
// exists, otherwise the base folder.
func (l *Lifecycle) OpenTarget(rec settings.Record) string {
	status := l.TodayStatus(rec)
	if status.Exists {
		return status.Path
	}
	return rec.FolderPath
}
