package sio

import (
	"context"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/Comcast/vend/machine"

	"github.com/gorilla/websocket"
	"golang.org/x/net/netutil"
)

// WebSocketConsole serves a Machine to one WebSocket operator at a
// time.  Each text message from the operator is one line of input.
// Prompts and replies go back as text messages.
//
// The Machine goes back to its initial State when an operator
// connects.  The store carries over.
type WebSocketConsole struct {
	Machine *machine.Machine
	Sinks   Sinks
	Verbose bool

	upgrader websocket.Upgrader

	// Serializes sessions.
	sync.Mutex
}

// NewWebSocketConsole makes a console for the given Machine.
func NewWebSocketConsole(m *machine.Machine, sinks Sinks) *WebSocketConsole {
	return &WebSocketConsole{
		Machine: m,
		Sinks:   sinks,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (c *WebSocketConsole) logf(format string, args ...interface{}) {
	if c.Verbose {
		log.Printf("WebSocketConsole."+format, args...)
	}
}

func (c *WebSocketConsole) send(conn *websocket.Conn, s string) error {
	return conn.WriteMessage(websocket.TextMessage, []byte(s))
}

// ServeHTTP upgrades the request and runs a session.
func (c *WebSocketConsole) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocketConsole upgrade error %s", err)
		return
	}
	defer conn.Close()

	c.Lock()
	defer c.Unlock()

	c.logf("ServeHTTP session from %s", r.RemoteAddr)

	c.Machine.Reset()
	if err := c.session(r.Context(), conn); err != nil {
		log.Printf("WebSocketConsole session error %s", err)
	}
}

func (c *WebSocketConsole) session(ctx context.Context, conn *websocket.Conn) error {
	if err := c.send(conn, c.Machine.Prompt()); err != nil {
		return err
	}
	for {
		_, bs, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		reply, err := Turn(ctx, c.Machine, c.Sinks, string(bs))
		if err != nil {
			c.send(conn, err.Error())
			return err
		}
		c.logf("session %q -> %s", bs, c.Machine.State())

		if reply != "" {
			if err = c.send(conn, reply); err != nil {
				return err
			}
		}
		if err = c.send(conn, c.Machine.Prompt()); err != nil {
			return err
		}
		if c.Machine.Done() {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			return conn.WriteMessage(websocket.CloseMessage, msg)
		}
	}
}

// Handler returns a mux with the console at /console.
func (c *WebSocketConsole) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/console", c)
	return mux
}

// Serve accepts connections on the given listener, at most one at a
// time, until the context is canceled.
func (c *WebSocketConsole) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler: c.Handler(),
	}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	log.Printf("WebSocketConsole serving %s/console", l.Addr())
	err := srv.Serve(netutil.LimitListener(l, 1))
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// ListenAndServe listens on the given address and calls Serve.
func (c *WebSocketConsole) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return c.Serve(ctx, l)
}
