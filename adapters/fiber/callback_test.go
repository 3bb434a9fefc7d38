package fiber

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelmanager/staffkit/core"
)

func newTestListener(t *testing.T) *Listener {
	t.Helper()
	l, err := New(0)
	require.NoError(t, err)
	t.Cleanup(func() { l.Shutdown() })
	return l
}

// Requirement: the redirect URI points at the bound loopback port and
// the callback path.
func TestListener_RedirectURI(t *testing.T) {
	l := newTestListener(t)

	uri := l.RedirectURI()
	assert.True(t, strings.HasPrefix(uri, "http://127.0.0.1:"), "uri = %q", uri)
	assert.True(t, strings.HasSuffix(uri, "/auth/callback"), "uri = %q", uri)
}

// Requirement: the browser redirect is answered with a closing page and
// its parameters reach the waiting flow.
func TestListener_DeliversCallback(t *testing.T) {
	l := newTestListener(t)

	resp, err := http.Get(l.RedirectURI() + "?code=abc123&state=state-1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	cb, err := l.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", cb.Code)
	assert.Equal(t, "state-1", cb.State)
}

// Requirement: a provider error callback surfaces as an error, and an
// empty callback is invalid.
func TestListener_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{name: "provider error", query: "?error=access_denied&error_description=denied"},
		{name: "empty callback", query: "", wantErr: core.ErrCallbackInvalid},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := newTestListener(t)

			resp, err := http.Get(l.RedirectURI() + test.query)
			require.NoError(t, err)
			resp.Body.Close()

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			_, err = l.Wait(ctx)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			assert.Error(t, err)
		})
	}
}

// Requirement: waiting past the deadline returns the context error
// instead of blocking.
func TestListener_WaitTimeout(t *testing.T) {
	l := newTestListener(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
