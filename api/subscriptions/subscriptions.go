// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/inconshreveable/log15"

	"github.com/metaspacelab/marketplace/meta"
)

var log = log15.New("pkg", "subscriptions")

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	sendBufferSize = 64
)

type subscriber struct {
	id   string
	conn *websocket.Conn
	send chan *BlockMessage
}

// Subscriptions streams per-block marketplace events and transfers
// over websocket.
type Subscriptions struct {
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[string]*subscriber
	done chan struct{}
	wg   sync.WaitGroup
}

func New(allowedOrigins []string) *Subscriptions {
	checkOrigin := func(req *http.Request) bool {
		origin := req.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range allowedOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
		return false
	}
	return &Subscriptions{
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
		subs:     make(map[string]*subscriber),
		done:     make(chan struct{}),
	}
}

// PublishBlock fans the block's events and transfers out to every
// subscriber. Slow subscribers are dropped instead of blocking the
// block loop.
func (s *Subscriptions) PublishBlock(num uint32, timestamp uint64, events []*meta.Event, transfers []*meta.Transfer) {
	msg := convertBlockMessage(num, timestamp, events, transfers)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sub := range s.subs {
		select {
		case sub.send <- msg:
		default:
			log.Warn("dropping slow subscriber", "id", id)
			delete(s.subs, id)
			close(sub.send)
		}
	}
}

func (s *Subscriptions) handleSubscribe(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "err", err)
		return
	}
	sub := &subscriber{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan *BlockMessage, sendBufferSize),
	}
	s.mu.Lock()
	s.subs[sub.id] = sub
	s.mu.Unlock()
	log.Debug("subscriber connected", "id", sub.id)

	s.wg.Add(2)
	go s.writeLoop(sub)
	go s.readLoop(sub)
}

func (s *Subscriptions) writeLoop(sub *subscriber) {
	defer s.wg.Done()
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-sub.send:
			if !ok {
				return
			}
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteJSON(msg); err != nil {
				s.remove(sub.id)
				return
			}
		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.remove(sub.id)
				return
			}
		case <-s.done:
			return
		}
	}
}

// readLoop drains the connection to notice the peer going away.
func (s *Subscriptions) readLoop(sub *subscriber) {
	defer s.wg.Done()
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			s.remove(sub.id)
			return
		}
	}
}

func (s *Subscriptions) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(sub.send)
		log.Debug("subscriber disconnected", "id", id)
	}
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/blocks").HandlerFunc(s.handleSubscribe)
}

// Close shuts every subscriber connection down.
func (s *Subscriptions) Close() {
	close(s.done)
	s.mu.Lock()
	for id, sub := range s.subs {
		sub.conn.Close()
		delete(s.subs, id)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
