package entitlement

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticGate(t *testing.T) {
	ok, err := StaticGate{Entitled: true}.Check(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = StaticGate{Entitled: false}.Check(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoteGate(t *testing.T) {
	t.Run("Entitled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"entitled": true}`))
		}))
		defer srv.Close()

		gate := NewRemoteGate(srv.URL, time.Second)
		ok, err := gate.Check(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("NotEntitled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"entitled": false}`))
		}))
		defer srv.Close()

		gate := NewRemoteGate(srv.URL, time.Second)
		ok, err := gate.Check(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ServerError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		gate := NewRemoteGate(srv.URL, time.Second)
		_, err := gate.Check(context.Background())
		assert.Error(t, err)
	})

	t.Run("Unreachable", func(t *testing.T) {
		gate := NewRemoteGate("http://127.0.0.1:1", 100*time.Millisecond)
		_, err := gate.Check(context.Background())
		assert.Error(t, err)
	})
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Static", Config{Mode: "static", Entitled: true}, false},
		{"DefaultMode", Config{}, false},
		{"Remote", Config{Mode: "remote", URL: "http://localhost/entitled"}, false},
		{"RemoteMissingURL", Config{Mode: "remote"}, true},
		{"Unknown", Config{Mode: "oracle"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, err := FromConfig(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, gate)
			}
		})
	}
}
