package myhttpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSend(t *testing.T) {

	t.Run("Headers and body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/transactions", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer my-token", r.Header.Get("Authorization"))
			assert.Equal(t, "device-42", r.Header.Get("X-Device-ID"))
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, `{"a":1}`, string(body))

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"trx-1"}`))
		}))
		defer server.Close()

		sender := New(Credentials{Token: "my-token", DeviceID: "device-42"}, time.Second)
		status, body, err := sender.Send(context.Background(), http.MethodPost, server.URL+"/transactions", []byte(`{"a":1}`))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, `{"id":"trx-1"}`, string(body))
	})

	t.Run("No credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			assert.Empty(t, r.Header.Get("X-Device-ID"))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		status, _, err := New(Credentials{}, 0).Send(context.Background(), http.MethodGet, server.URL, nil)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		c, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := New(Credentials{}, time.Second).Send(c, http.MethodGet, server.URL, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
