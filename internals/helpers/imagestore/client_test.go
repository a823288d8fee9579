package imagestore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientUpload(t *testing.T) {
	t.Run("posts multipart form and builds the cdn url", func(t *testing.T) {
		var gotPubKey, gotFilename, gotContent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/v1/base/", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))

			gotPubKey = r.FormValue("pub_key")
			f, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			gotFilename = hdr.Filename
			data, _ := io.ReadAll(f)
			gotContent = string(data)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"file": "img-42"}`))
		}))
		defer srv.Close()

		c := New(srv.URL+"/v1", "pub", "secret", "https://cdn.example.com")
		got, err := c.Upload(context.Background(), "cover.jpg", strings.NewReader("jpeg bytes"))
		require.NoError(t, err)

		assert.Equal(t, "pub", gotPubKey)
		assert.Equal(t, "cover.jpg", gotFilename)
		assert.Equal(t, "jpeg bytes", gotContent)
		assert.Equal(t, "img-42", got.ID)
		assert.Equal(t, "https://cdn.example.com/img-42/", got.URL)
	})

	t.Run("api error maps to ErrStore", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		c := New(srv.URL, "pub", "secret", "https://cdn.example.com")
		_, err := c.Upload(context.Background(), "a.png", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrStore)
	})

	t.Run("missing file id in response maps to ErrStore", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "pub", "secret", "https://cdn.example.com")
		_, err := c.Upload(context.Background(), "a.png", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrStore)
	})
}

func TestClientDelete(t *testing.T) {
	t.Run("deletes by id with the key pair", func(t *testing.T) {
		var gotPath, gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c := New(srv.URL, "pub", "secret", "https://cdn.example.com")
		require.NoError(t, c.Delete(context.Background(), "https://cdn.example.com/img-42/"))

		assert.Equal(t, "/files/img-42/", gotPath)
		assert.Equal(t, "Bearer pub:secret", gotAuth)
	})

	t.Run("already-gone file is not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		c := New(srv.URL, "pub", "secret", "https://cdn.example.com")
		assert.NoError(t, c.Delete(context.Background(), "https://cdn.example.com/img-42/"))
	})
}
