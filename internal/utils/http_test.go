package utils

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHttpPostForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/x-www-form-urlencoded" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b, _ := io.ReadAll(r.Body)
		_, _ = w.Write([]byte("echo:" + string(b)))
	}))
	defer srv.Close()

	body, err := HttpPostForm(context.Background(), srv.Client(), srv.URL, "a=1&b=2")
	require.NoError(t, err)
	require.Equal(t, "echo:a=1&b=2", body)
}

func TestHttpPostForm_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := HttpPostForm(context.Background(), nil, srv.URL, "")
	require.Error(t, err)
}

func TestDoWithRetry(t *testing.T) {
	calls := 0
	failures := 0
	err := DoWithRetry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	}, func(int, error) { failures++ })
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, 2, failures)
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := DoWithRetry(ctx, 5, time.Second, func() error {
		calls++
		return errors.New("boom")
	}, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}
