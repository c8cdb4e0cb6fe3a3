package cli

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/hilite/hilite-go/lib/hooks/events"
	"github.com/hilite/hilite-go/lib/models/annotation"
	"go.uber.org/zap"
)

// Watcher is a small terminal client that follows annotation events as the
// engine broadcasts them over the websocket hub.
type Watcher struct {
	host      string
	conn      *websocket.Conn
	connWrite sync.Mutex
	events    map[string][]func(interface{})
	closeChan chan struct{}
	closeOnce sync.Once
}

type AnnotationEvent struct {
	Kind         events.AnnotationEventKind `json:"kind"`
	AnnotationId string                     `json:"annotationId"`
	TabId        string                     `json:"tabId"`
	Record       *annotation.Record         `json:"record,omitempty"`
}

func NewWatcher(host string, conn *websocket.Conn) *Watcher {
	return &Watcher{
		host:      host,
		conn:      conn,
		events:    make(map[string][]func(interface{})),
		closeChan: make(chan struct{}),
	}
}

func (w *Watcher) On(event string, handler func(interface{})) {
	w.events[event] = append(w.events[event], handler)
}

func (w *Watcher) emit(event string, data interface{}) {
	for _, handler := range w.events[event] {
		go handler(data)
	}
}

func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.closeChan)
		if w.conn != nil {
			_ = w.conn.Close()
		}
		w.emit("disconnect", nil)
	})
}

func (w *Watcher) OnAnnotationEvent(callback func(event AnnotationEvent)) {
	w.On("annotationEvent", func(data interface{}) {
		if event, ok := data.(AnnotationEvent); ok {
			callback(event)
		}
	})
}

func (w *Watcher) OnDisconnect(callback func(err interface{})) {
	w.On("disconnect", func(data interface{}) {
		callback(data)
	})
}

func Connect(host string, logger *zap.SugaredLogger) (*Watcher, error) {
	return connect(host, logger)
}

func connect(host string, logger *zap.SugaredLogger) (*Watcher, error) {
	parsedUrl, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid host URL: %w", err)
	}
	base := fmt.Sprintf("%s://%s", parsedUrl.Scheme, parsedUrl.Host)

	wsUrl := strings.Replace(base, "http", "ws", 1) + "/ws"
	logger.Infof("Connecting to WebSocket at %s", wsUrl)
	connection, resp, err := websocket.DefaultDialer.Dial(wsUrl, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket connection failed (%s): %w", resp.Status, err)
		}
		return nil, fmt.Errorf("websocket connection failed: %w", err)
	}

	watcher := NewWatcher(base, connection)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("panic in recv goroutine: %v", r)
				watcher.emit("disconnect", r)
				_ = connection.Close()
			}
			watcher.Close()
		}()

		var (
			newline = []byte{'\n'}
			space   = []byte{' '}
		)
		for {
			select {
			case <-watcher.closeChan:
				return
			default:
				_, message, err := connection.ReadMessage()
				if err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
						logger.Errorf("error: %v", err)
					}
					watcher.emit("disconnect", err)
					return
				}
				message = bytes.TrimSpace(bytes.Replace(message, newline, space, -1))
				logger.Debugf("Received: %s", message)

				var event AnnotationEvent
				if err := json.Unmarshal(message, &event); err != nil {
					logger.Errorf("cannot decode annotation event: %v", err)
					continue
				}
				if event.Kind == "" {
					continue
				}
				watcher.emit("annotationEvent", event)
			}
		}
	}()

	return watcher, nil
}

func listAnnotations(host string, tabId string) ([]annotation.Record, error) {
	endpoint := host + "/annotations"
	if tabId != "" {
		endpoint = fmt.Sprintf("%s/tabs/%s/annotations", host, url.PathEscape(tabId))
	}
	resp, err := http.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("listing annotations failed, status: %s, body: %s", resp.Status, string(body))
	}

	var records []annotation.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func printRecord(record *annotation.Record) {
	if record == nil {
		return
	}
	fmt.Printf("  [%s] %s %q (%s)\n", record.Id, record.Property.Label, record.TextSnapshot, record.Color)
}

func RunFromCLI(logger *zap.SugaredLogger, args []string) {
	host, tabId, list, err := parseCLIArgs(args)
	if err != nil {
		return
	}

	if host == "" {
		fmt.Println("No host specified..")
		return
	}

	if list {
		records, err := listAnnotations(host, tabId)
		if err != nil {
			fmt.Printf("Failed to list annotations: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d annotation(s)\n", len(records))
		for i := range records {
			printRecord(&records[i])
		}
		return
	}

	watcher, err := connect(host, logger)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("Watching annotation events on %s\n", watcher.host)

	watcher.OnAnnotationEvent(func(event AnnotationEvent) {
		if tabId != "" && event.TabId != tabId {
			return
		}
		fmt.Printf("%s %s (tab %s)\n", event.Kind, event.AnnotationId, event.TabId)
		printRecord(event.Record)
	})

	done := make(chan struct{})
	watcher.On("disconnect", func(_ interface{}) {
		close(done)
	})
	<-done

	logger.Infof("Stopping CLI")
}

func parseCLIArgs(args []string) (string, string, bool, error) {
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	host := fs.String("host", "", "The host of the engine (e.g. http://127.0.0.1:9002)")
	tabId := fs.String("tab", "", "Only show events for this tab")
	fs.StringVar(tabId, "t", "", "Only show events for this tab (shorthand)")
	list := fs.Bool("list", false, "List current annotations and exit")

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		*host = args[0]
		args = args[1:]
	}

	err := fs.Parse(args)
	return *host, *tabId, *list, err
}
