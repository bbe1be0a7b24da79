package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/inovacc/phonebook/internal/core"
	"github.com/inovacc/phonebook/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	s, err := New(Config{Addr: "127.0.0.1:0"}, Options{})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return s, ts
}

func postForm(t *testing.T, ts *httptest.Server, form url.Values) APIResponse {
	t.Helper()

	resp, err := ts.Client().PostForm(ts.URL+"/exec", form)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func TestHandleHealth(t *testing.T) {
	_, ts := setupServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestHandleExec_Rejections(t *testing.T) {
	_, ts := setupServer(t)

	postForm(t, ts, url.Values{"action": {"add"}, "location": {"A1"}, "extension": {"100"}, "username": {"Alice"}})

	tests := []struct {
		name    string
		form    url.Values
		wantErr string
	}{
		{name: "unknown action", form: url.Values{"action": {"purge"}}, wantErr: `unknown action "purge"`},
		{name: "missing action", form: url.Values{}, wantErr: `unknown action ""`},
		{name: "missing field", form: url.Values{"action": {"add"}, "location": {"A1"}, "extension": {" "}, "username": {"Bob"}}, wantErr: "missing extension"},
		{name: "update out of range", form: url.Values{"action": {"update"}, "rowIndex": {"3"}, "location": {"A"}, "extension": {"1"}, "username": {"B"}}, wantErr: "out of range"},
		{name: "delete out of range", form: url.Values{"action": {"delete"}, "rowIndex": {"-1"}}, wantErr: "out of range"},
		{name: "delete without index", form: url.Values{"action": {"delete"}}, wantErr: "rowIndex is required"},
		{name: "delete bad index", form: url.Values{"action": {"delete"}, "rowIndex": {"first"}}, wantErr: "invalid rowIndex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := postForm(t, ts, tt.form)
			assert.False(t, out.Success)
			assert.Contains(t, out.Error, tt.wantErr)
		})
	}

	// Nothing above changed the sheet
	client, err := core.NewSheetClient(ts.URL+"/exec", core.SheetClientOptions{HTTPClient: ts.Client()})
	require.NoError(t, err)

	records, err := client.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestHandleExec_GetOnlyReads(t *testing.T) {
	_, ts := setupServer(t)

	resp, err := ts.Client().Get(ts.URL + "/exec?action=delete&rowIndex=0")
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	var out APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/exec", strings.NewReader(""))
	require.NoError(t, err)

	putResp, err := ts.Client().Do(req)
	require.NoError(t, err)

	_ = putResp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, putResp.StatusCode)
}

func TestServer_DirectoryRoundTrip(t *testing.T) {
	_, ts := setupServer(t)
	ctx := context.Background()

	client, err := core.NewSheetClient(ts.URL+"/exec", core.SheetClientOptions{HTTPClient: ts.Client()})
	require.NoError(t, err)

	d := core.NewDirectory(client, core.DirectoryOptions{})
	require.NoError(t, d.Read(ctx))
	assert.Equal(t, 0, d.Len())

	require.NoError(t, d.Add(ctx, model.Record{Location: "A13", Extension: "701", Username: "Alice"}))
	require.NoError(t, d.Add(ctx, model.Record{Location: "Office", Extension: "702", Username: "Bob"}))
	require.NoError(t, d.Update(ctx, 0, model.Record{Location: "A14", Extension: "701", Username: "Alice"}))

	assert.Equal(t, []model.Record{
		{Location: "A14", Extension: "701", Username: "Alice", RowIndex: 0},
		{Location: "Office", Extension: "702", Username: "Bob", RowIndex: 1},
	}, d.Records())

	require.NoError(t, d.Delete(ctx, 0, func(model.Record) bool { return true }))
	assert.Equal(t, []model.Record{{Location: "Office", Extension: "702", Username: "Bob", RowIndex: 0}}, d.Records())

	err = d.Update(ctx, 4, model.Record{Location: "X", Extension: "1", Username: "Y"})
	assert.ErrorIs(t, err, core.ErrMutationRejected)
}

func TestServer_ShutdownFromAnotherGoroutine(t *testing.T) {
	s, err := New(Config{Addr: "127.0.0.1:0"}, Options{})
	require.NoError(t, err)

	defer func() {
		_ = s.Close()
	}()

	done := make(chan error, 1)

	go func() {
		done <- s.Start(context.Background())
	}()

	select {
	case <-s.Ready():
	case err := <-done:
		t.Fatalf("server stopped early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	require.NoError(t, s.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	s, err := New(Config{Addr: "127.0.0.1:0"}, Options{})
	require.NoError(t, err)

	defer func() {
		_ = s.Close()
	}()

	require.NoError(t, s.Shutdown(context.Background()))
	assert.NoError(t, s.Start(context.Background()))
}

func TestServer_StartAndShutdown(t *testing.T) {
	s, err := New(Config{Addr: "127.0.0.1:0"}, Options{})
	require.NoError(t, err)

	defer func() {
		_ = s.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- s.Start(ctx)
	}()

	select {
	case <-s.Ready():
	case err := <-done:
		t.Fatalf("server stopped early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + s.Addr() + "/health")
	require.NoError(t, err)

	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
