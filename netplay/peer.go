package netplay

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// PeerState tracks the connection lifecycle.
type PeerState int

const (
	StateConnected PeerState = iota
	StateDisconnected
)

const inboxSize = 256

// Peer is one end of the ordered, best-effort match channel: a single
// websocket connection to the other player. The read loop queues inbound
// messages; the match scene drains them with Poll before every tick, which
// keeps ingestion strictly ordered before the tick that consumes it.
type Peer struct {
	mu        sync.RWMutex
	state     PeerState
	lastError error
	conn      *websocket.Conn

	inbox chan Message
}

func newPeer(conn *websocket.Conn) *Peer {
	p := &Peer{
		state: StateConnected,
		conn:  conn,
		inbox: make(chan Message, inboxSize),
	}
	go p.readLoop()
	return p
}

// Host listens on addr and waits for the opposing player to connect.
// It returns once a peer is attached or ctx is cancelled. Discovery and
// address exchange happen out of band.
func Host(ctx context.Context, addr string) (*Peer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	connCh := make(chan *websocket.Conn, 1)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Printf("[netplay] accept failed: %v", err)
			return
		}
		select {
		case connCh <- c:
		default:
			// Already have an opponent; this is a two-player game.
			c.Close(websocket.StatusTryAgainLater, "match full")
		}
	})}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("[netplay] serve error: %v", err)
		}
	}()

	select {
	case conn := <-connCh:
		// Stop accepting; the match needs exactly one connection.
		go func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Printf("[netplay] opponent connected on %s", addr)
		return newPeer(conn), nil
	case <-ctx.Done():
		_ = srv.Close()
		return nil, ctx.Err()
	}
}

// Join dials a hosting peer at url (e.g. ws://host:port).
func Join(ctx context.Context, url string) (*Peer, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	log.Printf("[netplay] connected to %s", url)
	return newPeer(conn), nil
}

func (p *Peer) readLoop() {
	for {
		typ, data, err := p.conn.Read(context.Background())
		if err != nil {
			p.mu.Lock()
			if p.state != StateDisconnected {
				p.state = StateDisconnected
				p.lastError = err
			}
			p.mu.Unlock()
			return
		}
		if typ != websocket.MessageBinary {
			continue
		}
		msg, err := Decode(data)
		if err != nil {
			// Malformed frames never reach the simulation.
			log.Printf("[netplay] dropping malformed message: %v", err)
			continue
		}
		select {
		case p.inbox <- msg:
		default:
			log.Printf("[netplay] inbox full, dropping message type %d", msg.Type)
		}
	}
}

// Send transmits one message. Losing the connection surfaces here and via
// Err; the redundant input window makes occasional losses harmless.
func (p *Peer) Send(m Message) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.conn.Write(ctx, websocket.MessageBinary, data); err != nil {
		return fmt.Errorf("send message type %d: %w", m.Type, err)
	}
	return nil
}

// Poll drains every queued inbound message without blocking.
func (p *Peer) Poll() []Message {
	var msgs []Message
	for {
		select {
		case m := <-p.inbox:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

// State reports the connection state.
func (p *Peer) State() PeerState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Err returns the error that ended the connection, if any.
func (p *Peer) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastError
}

// Close tears the connection down.
func (p *Peer) Close() {
	_ = p.conn.Close(websocket.StatusNormalClosure, "match closed")
}
