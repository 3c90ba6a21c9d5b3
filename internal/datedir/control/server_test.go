package control

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/datedir/internal/datedir/dateformat"
	"github.com/example/datedir/internal/datedir/domain"
	"github.com/example/datedir/internal/datedir/folder"
	"github.com/example/datedir/internal/datedir/settings"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubForeground struct {
	mu        sync.Mutex
	rec       settings.Record
	status    folder.Status
	opened    []string
	validated []string
	autostart bool
	quits     int
	shows     int
	hides     int
	pick      string
	picked    bool
	err       error
}

func (s *stubForeground) CreateTodayFolder(context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.status.Path, nil
}

func (s *stubForeground) OpenFolder(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.opened = append(s.opened, path)
	return nil
}

func (s *stubForeground) Settings(context.Context) (settings.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec, s.err
}

func (s *stubForeground) SaveSettings(_ context.Context, rec settings.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.rec = rec
	return nil
}

func (s *stubForeground) ValidateFolderPath(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validated = append(s.validated, path)
	return s.err
}

func (s *stubForeground) TodayStatus(context.Context) (folder.Status, error) {
	return s.status, s.err
}

func (s *stubForeground) ShowWindow(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shows++
	return s.err
}

func (s *stubForeground) HideWindow(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hides++
	return s.err
}

func (s *stubForeground) Quit(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quits++
	return nil
}

func (s *stubForeground) EnableAutostart(context.Context) error {
	s.autostart = true
	return s.err
}

func (s *stubForeground) DisableAutostart(context.Context) error {
	s.autostart = false
	return s.err
}

func (s *stubForeground) AutostartEnabled(context.Context) (bool, error) {
	return s.autostart, s.err
}

func (s *stubForeground) SelectFolder(context.Context) (string, bool, error) {
	return s.pick, s.picked, s.err
}

func newTestClient(t *testing.T, fg *stubForeground) (*Client, *Server) {
	t.Helper()
	srv := NewServer(fg, ServerOptions{Workers: 2})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return NewClientWithHTTP(ts.URL, ts.Client()), srv
}

func testRecord() settings.Record {
	return settings.Record{
		FolderPath:          "/data/base",
		DateFormat:          dateformat.ShortMonthDay,
		AutoStart:           true,
		AutoCreateOnStartup: false,
	}
}

func TestClientRoundTrip(t *testing.T) {
	fg := &stubForeground{
		rec:    testRecord(),
		status: folder.Status{Exists: true, Path: "/data/base/0315"},
		pick:   "/data/picked",
		picked: true,
	}
	client, _ := newTestClient(t, fg)
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))

	path, err := client.CreateTodayFolder(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/data/base/0315", path)

	status, err := client.TodayStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, fg.status, status)

	rec, err := client.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, testRecord(), rec)

	next := testRecord()
	next.DateFormat = dateformat.FullISODate
	require.NoError(t, client.SaveSettings(ctx, next))
	assert.Equal(t, next, fg.rec)

	require.NoError(t, client.OpenFolder(ctx, ""))
	require.NoError(t, client.OpenFolder(ctx, "/data/explicit"))
	assert.Equal(t, []string{"", "/data/explicit"}, fg.opened)

	require.NoError(t, client.ValidateFolderPath(ctx, "/data/base"))
	assert.Equal(t, []string{"/data/base"}, fg.validated)

	require.NoError(t, client.ShowWindow(ctx))
	require.NoError(t, client.HideWindow(ctx))
	assert.Equal(t, 1, fg.shows)
	assert.Equal(t, 1, fg.hides)

	require.NoError(t, client.EnableAutostart(ctx))
	enabled, err := client.AutostartEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
	require.NoError(t, client.DisableAutostart(ctx))
	enabled, err = client.AutostartEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	picked, ok, err := client.SelectFolder(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/data/picked", picked)

	require.NoError(t, client.Quit(ctx))
	assert.Equal(t, 1, fg.quits)
}

func TestErrorKindsSurviveTheWire(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		sentinel error
	}{
		{"invalid path", domain.InvalidPath("folder does not exist"), http.StatusBadRequest, domain.ErrInvalidPath},
		{"permission", domain.PermissionDenied("folder is not writable", nil), http.StatusForbidden, domain.ErrPermissionDenied},
		{"filesystem", domain.FileSystem("cannot create folder", errors.New("disk full")), http.StatusInternalServerError, domain.ErrFileSystem},
		{"configuration", domain.Configuration("cannot save settings", nil), http.StatusInternalServerError, domain.ErrConfiguration},
		{"foreign", errors.New("boom"), http.StatusInternalServerError, domain.ErrUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg := &stubForeground{err: tt.err}
			client, srv := newTestClient(t, fg)

			req := httptest.NewRequest(http.MethodPost, "/v1/folders/today", nil)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error_type"`)

			_, err := client.CreateTodayFolder(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, domain.MessageOf(tt.err), domain.MessageOf(err))
		})
	}
}

func TestSaveSettingsRejectsMalformedBody(t *testing.T) {
	fg := &stubForeground{rec: testRecord()}
	_, srv := newTestClient(t, fg)

	bodies := []string{
		`{`,
		`{"folder_path":"/x","date_format":"DDMM","auto_start":true,"auto_create_on_startup":true}`,
		`{"folder_path":"/x","date_format":"MMDD","auto_start":true}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Equal(t, testRecord(), fg.rec)
}

func TestRequestIDIsEchoed(t *testing.T) {
	_, srv := newTestClient(t, &stubForeground{})

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	fg := &stubForeground{status: folder.Status{Path: "/data/base/0315"}}
	client, srv := newTestClient(t, fg)

	_, err := client.TodayStatus(context.Background())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "datedir_control_requests_total")
	assert.Contains(t, string(body), `operation="/v1/folders/today/status"`)
}

func TestClientUnavailable(t *testing.T) {
	client := NewClient("/nonexistent/datedir.sock")
	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
}
