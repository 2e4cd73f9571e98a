package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	var gotMethod, gotPath, gotCT, gotToken string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.RequestURI()
		gotCT = r.Header.Get("Content-Type")
		gotToken = r.Header.Get("X-Token")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/", time.Second)
	c.SetHeader("X-Token", "tok")

	var out struct {
		ID string `json:"id"`
	}
	err := c.Do(context.Background(), http.MethodPost, "/files?x=1", map[string]any{"name": "a"}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/files?x=1", gotPath)
	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, "tok", gotToken)
	assert.Equal(t, "a", gotBody["name"])
	assert.Equal(t, "abc", out.ID)
}

func TestClient_Do_NoContentAndHeaderRemoval(t *testing.T) {
	var gotToken string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Token")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)
	c.SetHeader("X-Token", "tok")
	c.SetHeader("X-Token", "")

	var out map[string]any
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/disconnect", nil, &out))
	assert.Empty(t, gotToken)
	assert.Nil(t, out)
}

func TestClient_Do_StatusError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		code    int
		wantMsg string
		wantErr string
	}{
		{name: "json error body", body: `{"error":"missing name"}`, code: 400, wantMsg: "missing name", wantErr: "request failed: 400 missing name"},
		{name: "plain body", body: "boom", code: 502, wantMsg: "", wantErr: "request failed: 502 Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			err := NewClient(ts.URL, time.Second).Do(context.Background(), http.MethodGet, "/", nil, nil)
			require.Error(t, err)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.wantMsg, se.Message)
			assert.EqualError(t, err, tt.wantErr)
			assert.True(t, IsStatus(err, tt.code))
		})
	}
}

func TestClient_DoWithBasicAuth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || u != "bob@example.com" || p != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"t1"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, c.DoWithBasicAuth(context.Background(), http.MethodGet, "/connect", "bob@example.com", "pw", &out))
	assert.Equal(t, "t1", out.Token)

	err := c.DoWithBasicAuth(context.Background(), http.MethodGet, "/connect", "bob@example.com", "bad", &out)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestClient_Download(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("size") == "999" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second)

	var buf bytes.Buffer
	ct, err := c.Download(context.Background(), "/files/x/data", &buf)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, payload, buf.Bytes())

	_, err = c.Download(context.Background(), "/files/x/data?size=999", io.Discard)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
}

func TestClient_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	err := NewClient(ts.URL, time.Second).Do(context.Background(), http.MethodGet, "/", nil, nil)
	require.Error(t, err)

	var se *StatusError
	assert.False(t, IsStatus(err, 0))
	assert.NotErrorAs(t, err, &se)
}
