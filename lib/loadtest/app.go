package loadtest

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hilite/hilite-go/lib/cli"
	"github.com/hilite/hilite-go/lib/models/annotation"
	"go.uber.org/zap"
)

func RunFromCLI(logger *zap.SugaredLogger, args []string) {
	host, writers, watchers, duration, err := parseRunArgs(args)
	if err != nil {
		return
	}
	StartLoadTest(logger, host, writers, watchers, duration)
}

func parseRunArgs(args []string) (string, int, int, int, error) {
	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	host := fs.String("host", "http://127.0.0.1:9002", "The host to test")
	writers := fs.Int("writers", 1, "Number of writers cycling annotations")
	watchers := fs.Int("watchers", 0, "Number of websocket watchers")
	duration := fs.Int("duration", 0, "Duration of the test in seconds")

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		*host = args[0]
		args = args[1:]
	}

	err := fs.Parse(args)
	return *host, *writers, *watchers, *duration, err
}

type Metrics struct {
	WritersConnected  int64
	WatchersConnected int64
	CreatesSent       int64
	UpdatesSent       int64
	DeletesSent       int64
	ErrorCount        int64
	Conflicts         int64
	EventsFromServer  int64
	StartTime         time.Time
}

var stats Metrics
var statsLock sync.Mutex

func updateMetricsUI(host string) {
	if os.Getenv("SILENT_METRICS") == "true" {
		return
	}
	statsLock.Lock()
	defer statsLock.Unlock()

	testDuration := time.Since(stats.StartTime)

	// Clear screen and move cursor to top-left
	fmt.Print("\033[2J\033[0;0H")
	fmt.Printf("Load Test Metrics -- Target %s\n\n", host)

	fmt.Printf("Writers Connected: %d\n", atomic.LoadInt64(&stats.WritersConnected))
	fmt.Printf("Watchers Connected: %d\n", atomic.LoadInt64(&stats.WatchersConnected))
	fmt.Printf("Creates sent: %d\n", atomic.LoadInt64(&stats.CreatesSent))
	fmt.Printf("Updates sent: %d\n", atomic.LoadInt64(&stats.UpdatesSent))
	fmt.Printf("Deletes sent: %d\n", atomic.LoadInt64(&stats.DeletesSent))
	fmt.Printf("Range conflicts: %d\n", atomic.LoadInt64(&stats.Conflicts))
	fmt.Printf("Errors: %d\n", atomic.LoadInt64(&stats.ErrorCount))

	eventsFromServer := atomic.LoadInt64(&stats.EventsFromServer)
	fmt.Printf("Events broadcast by server: %d\n", eventsFromServer)

	durationSec := testDuration.Seconds()
	if durationSec > 0 {
		fmt.Printf("Mean(per second) of broadcast events: %.0f\n", float64(eventsFromServer)/durationSec)
	}

	fmt.Printf("Seconds test has been running for: %d\n", int(durationSec))
}

type createDto struct {
	BlockId    string `json:"blockId"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	PropertyId string `json:"propertyId"`
}

type updateDto struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func fetchProperties(host string) ([]annotation.PropertyRef, error) {
	resp, err := http.Get(host + "/properties")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	var refs []annotation.PropertyRef
	if err := json.NewDecoder(resp.Body).Decode(&refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func postJSON(method, endpoint string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

// cycleOnce creates, shrinks and deletes one annotation so the document
// returns to its base state between iterations.
func cycleOnce(host string, blockId string, properties []annotation.PropertyRef) {
	start := rand.Intn(16)
	end := start + 2 + rand.Intn(4)
	property := properties[rand.Intn(len(properties))]

	atomic.AddInt64(&stats.CreatesSent, 1)
	resp, err := postJSON("POST", host+"/annotations", createDto{
		BlockId:    blockId,
		Start:      start,
		End:        end,
		PropertyId: property.Id,
	})
	if err != nil {
		atomic.AddInt64(&stats.ErrorCount, 1)
		return
	}
	if resp.StatusCode == http.StatusConflict {
		_ = resp.Body.Close()
		atomic.AddInt64(&stats.Conflicts, 1)
		return
	}
	if resp.StatusCode != http.StatusCreated {
		_ = resp.Body.Close()
		atomic.AddInt64(&stats.ErrorCount, 1)
		return
	}
	var created annotation.Record
	err = json.NewDecoder(resp.Body).Decode(&created)
	_ = resp.Body.Close()
	if err != nil {
		atomic.AddInt64(&stats.ErrorCount, 1)
		return
	}

	atomic.AddInt64(&stats.UpdatesSent, 1)
	resp, err = postJSON("PUT", host+"/annotations/"+created.Id, updateDto{Start: start, End: end - 1})
	if err != nil {
		atomic.AddInt64(&stats.ErrorCount, 1)
	} else {
		if resp.StatusCode != http.StatusOK {
			atomic.AddInt64(&stats.ErrorCount, 1)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}

	atomic.AddInt64(&stats.DeletesSent, 1)
	req, err := http.NewRequest("DELETE", host+"/annotations/"+created.Id, nil)
	if err != nil {
		atomic.AddInt64(&stats.ErrorCount, 1)
		return
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		atomic.AddInt64(&stats.ErrorCount, 1)
		return
	}
	if resp.StatusCode != http.StatusNoContent {
		atomic.AddInt64(&stats.ErrorCount, 1)
	}
	_ = resp.Body.Close()
}

func newWriter(host string, blockId string, properties []annotation.PropertyRef) {
	atomic.AddInt64(&stats.WritersConnected, 1)
	updateMetricsUI(host)

	ticker := time.NewTicker(400 * time.Millisecond)
	go func() {
		for range ticker.C {
			cycleOnce(host, blockId, properties)
			updateMetricsUI(host)
		}
	}()
}

func newWatcher(host string, logger *zap.SugaredLogger) {
	watcher, err := cli.Connect(host, logger)
	if err != nil {
		fmt.Printf("connection error connecting watcher: %v\n", err)
		atomic.AddInt64(&stats.ErrorCount, 1)
		return
	}

	atomic.AddInt64(&stats.WatchersConnected, 1)
	updateMetricsUI(host)

	watcher.OnAnnotationEvent(func(event cli.AnnotationEvent) {
		atomic.AddInt64(&stats.EventsFromServer, 1)
		updateMetricsUI(host)
	})

	watcher.OnDisconnect(func(err interface{}) {
		atomic.AddInt64(&stats.WatchersConnected, -1)
	})
}

func StartLoadTest(logger *zap.SugaredLogger, host string, numWriters, numWatchers int, duration int) {
	stats.StartTime = time.Now()

	if host == "" {
		host = "http://127.0.0.1:9002"
	}
	host = strings.TrimSuffix(host, "/")

	properties, err := fetchProperties(host)
	if err != nil || len(properties) == 0 {
		fmt.Printf("Cannot fetch properties from %s: %v\n", host, err)
		if os.Getenv("GO_TEST_MODE") == "true" {
			return
		}
		os.Exit(1)
	}

	var endTime time.Time
	if duration > 0 {
		endTime = stats.StartTime.Add(time.Duration(duration) * time.Second)
	}

	go func() {
		for i := 0; i < numWatchers; i++ {
			newWatcher(host, logger)
			time.Sleep(100 * time.Millisecond)
		}
		for i := 0; i < numWriters; i++ {
			newWriter(host, "intro", properties)
			time.Sleep(100 * time.Millisecond)
		}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	for range ticker.C {
		if !endTime.IsZero() && time.Now().After(endTime) {
			fmt.Println("Test duration complete and Load Tests PASS")
			fmt.Printf("%+v\n", stats)
			if os.Getenv("GO_TEST_MODE") == "true" {
				return
			}
			os.Exit(0)
		}
	}
}
