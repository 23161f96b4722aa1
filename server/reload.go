package server

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/syntax-framework/basset/asset"
)

// ReloadPath of the live reload websocket, under basset.handles
const ReloadPath = "_reload"

type ReloadMessageType string

const (
	ReloadTypeFull ReloadMessageType = "reload"
	ReloadTypeCSS  ReloadMessageType = "css"
)

// ReloadMessage is sent to browsers when an asset changes on disk
type ReloadMessage struct {
	Type ReloadMessageType `json:"type"`
	File string            `json:"file,omitempty"`
}

// Reloader tells connected browsers to reload when assets change
type Reloader struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewReloader(logger *slog.Logger) *Reloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reloader{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// HandleWebSocket keeps the browser connection until it goes away
func (r *Reloader) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Debug("live reload upgrade failed", slog.Any("error", err))
		return
	}

	r.mu.Lock()
	r.clients[conn] = true
	r.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	r.mu.Lock()
	delete(r.clients, conn)
	r.mu.Unlock()
	conn.Close()
}

// Notify sends a message to all clients, dropping the ones that fail
func (r *Reloader) Notify(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	r.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}
	r.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			r.mu.Lock()
			delete(r.clients, client)
			r.mu.Unlock()
			client.Close()
		}
	}
}

func (r *Reloader) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *Reloader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for client := range r.clients {
		client.Close()
		delete(r.clients, client)
	}
}

// Watch polls the local assets of b every interval until ctx is done. Stylesheet changes are
// sent as css messages, script changes as full reloads.
func (r *Reloader) Watch(ctx context.Context, b *asset.Basset, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	seen := scanAssets(b)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current := scanAssets(b)
			for _, msg := range changes(b, seen, current) {
				r.logger.Info("asset changed", slog.String("type", string(msg.Type)), slog.String("file", msg.File))
				r.Notify(msg)
			}
			seen = current
		}
	}
}

// watched the last modification time of a local asset
type watched struct {
	asset   *asset.Asset
	modTime time.Time
}

func scanAssets(b *asset.Basset) map[string]watched {
	out := map[string]watched{}
	for _, name := range b.Names() {
		collection := b.Collection(name, nil)
		for _, group := range []asset.Group{asset.Styles, asset.Scripts} {
			for _, a := range collection.Assets(group) {
				p := a.Path()
				if p == "" {
					continue
				}
				info, err := os.Stat(p)
				if err != nil {
					continue
				}
				out[p] = watched{asset: a, modTime: info.ModTime()}
			}
		}
	}
	return out
}

// changes one css message per changed stylesheet, a single full reload when any other asset changed
func changes(b *asset.Basset, before, after map[string]watched) []ReloadMessage {
	var messages []ReloadMessage
	full := false
	for p, now := range after {
		previous, exists := before[p]
		if exists && previous.modTime.Equal(now.modTime) {
			continue
		}
		if now.asset.Is(asset.Styles) && !now.asset.IsLess() {
			messages = append(messages, ReloadMessage{Type: ReloadTypeCSS, File: b.HandlesPath(now.asset.RelativePath())})
			continue
		}
		full = true
	}
	for p := range before {
		if _, exists := after[p]; !exists {
			full = true
		}
	}
	if full {
		return []ReloadMessage{{Type: ReloadTypeFull}}
	}
	return messages
}

// ReloadScript the browser side of the live reload, include it in development pages
func ReloadScript(b *asset.Basset) template.HTML {
	path := b.HandlesPath(ReloadPath)
	return template.HTML(`<script>
(function() {
    var delay = 1000;
    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '` + path + `');
        ws.onopen = function() { delay = 1000; };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            if (msg.type === 'css') {
                var links = document.querySelectorAll('link[rel="stylesheet"]');
                for (var i = 0; i < links.length; i++) {
                    var href = links[i].getAttribute('href').split('?')[0];
                    if (href === msg.file) {
                        links[i].setAttribute('href', href + '?t=' + Date.now());
                        return;
                    }
                }
            }
            location.reload();
        };
        ws.onclose = function() {
            setTimeout(function() { delay = Math.min(delay * 2, 30000); connect(); }, delay);
        };
    }
    connect();
})();
</script>`)
}
