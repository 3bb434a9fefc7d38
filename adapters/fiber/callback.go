// Package fiber runs a loopback HTTP listener that catches the OAuth
// redirect for desktop and CLI sign-in flows, where no app URL scheme
// is available.
package fiber

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/gofiber/fiber/v3"

	"github.com/hotelmanager/staffkit/core"
)

const callbackPath = "/auth/callback"

// resultPage is served to the browser once the redirect lands; the
// actual tokens continue through the channel.
const resultPage = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Hotel Manager</title></head>
<body><p>Inicio de sesión completado. Ya puedes cerrar esta ventana.</p></body>
</html>`

// Listener accepts a single OAuth callback on a loopback port.
//
// Usage: New, RedirectURI into BeginOAuth, open the authorize URL in a
// browser, Wait for the callback, pass it to CompleteOAuth, Shutdown.
type Listener struct {
	app  *fiber.App
	ln   net.Listener
	once sync.Once

	results chan *core.Callback
}

// New binds a loopback listener. port 0 picks a free port; pass a fixed
// port when the OAuth provider only allows registered redirect URIs.
func New(port int) (*Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("binding callback listener: %w", err)
	}

	l := &Listener{
		app:     fiber.New(),
		ln:      ln,
		results: make(chan *core.Callback, 1),
	}
	l.app.Get(callbackPath, l.handle)

	go func() {
		if err := l.app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			// Listener is closed on Shutdown; nothing to report.
			_ = err
		}
	}()

	return l, nil
}

// RedirectURI is the redirect_to value to register with the provider.
func (l *Listener) RedirectURI() string {
	return fmt.Sprintf("http://%s%s", l.ln.Addr().String(), callbackPath)
}

func (l *Listener) handle(c fiber.Ctx) error {
	cb := &core.Callback{
		Code:         c.Query("code"),
		AccessToken:  c.Query("access_token"),
		RefreshToken: c.Query("refresh_token"),
		State:        c.Query("state"),
		ErrorCode:    c.Query("error"),
		ErrorDesc:    c.Query("error_description"),
	}

	// Only the first callback counts; stray reloads are answered but
	// dropped.
	select {
	case l.results <- cb:
	default:
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(resultPage)
}

// Wait blocks until the browser hits the callback or ctx ends.
func (l *Listener) Wait(ctx context.Context) (*core.Callback, error) {
	select {
	case cb := <-l.results:
		if cb.ErrorCode != "" {
			return nil, fmt.Errorf("oauth callback error %s: %s", cb.ErrorCode, cb.ErrorDesc)
		}
		if cb.Code == "" && !cb.HasTokenPair() {
			return nil, core.ErrCallbackInvalid
		}
		return cb, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Shutdown stops the listener. Safe to call more than once.
func (l *Listener) Shutdown() error {
	var err error
	l.once.Do(func() {
		err = l.app.Shutdown()
	})
	return err
}
