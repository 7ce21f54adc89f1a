// Package monitoring turns a process that works with heterogeneous buffers
// into a small web server, so live buffers and process resources can be
// observed from outside.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/hmem/buf"
)

// Monitor serves the state of registered buffers over HTTP.
type Monitor struct {
	portNumber int

	lock    sync.Mutex
	names   []string
	buffers map[string]buf.Handle

	url string
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		buffers: make(map[string]buf.Handle),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterBuffer registers a buffer to be monitored under the given name.
func (m *Monitor) RegisterBuffer(name string, h buf.Handle) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, exists := m.buffers[name]; !exists {
		m.names = append(m.names, name)
	}

	m.buffers[name] = h
}

// StartServer starts the monitor as a web server. It returns the URL the
// server listens on.
func (m *Monitor) StartServer() string {
	r := mux.NewRouter()
	r.HandleFunc("/api/buffers", m.listBuffers)
	r.HandleFunc("/api/buffer/{name}", m.inspectBuffer)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber >= 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring buffers with %s\n", m.url)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()

	return m.url
}

// OpenBrowser opens the monitor URL in the default browser. StartServer must
// have been called first.
func (m *Monitor) OpenBrowser() {
	if m.url == "" {
		log.Panic("monitor server is not started")
	}

	if err := browser.OpenURL(m.url + "/api/buffers"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open browser: %s\n", err)
	}
}

type bufferRsp struct {
	Name      string `json:"name"`
	Allocated bool   `json:"allocated"`
	Count     int    `json:"count"`
	NumBytes  int    `json:"num_bytes"`
	Space     string `json:"space"`
}

func (m *Monitor) listBuffers(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	rsp := make([]bufferRsp, 0, len(m.names))
	for _, name := range m.names {
		h := m.buffers[name]
		rsp = append(rsp, bufferRsp{
			Name:      name,
			Allocated: h.Allocated(),
			Count:     h.Len(),
			NumBytes:  h.NumBytes(),
			Space:     h.Space().String(),
		})
	}

	data, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(data)
	dieOnErr(err)
}

func (m *Monitor) inspectBuffer(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	m.lock.Lock()
	h, ok := m.buffers[name]
	m.lock.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Buffer not found"))
		dieOnErr(err)

		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(h)
	serializer.SetMaxDepth(1)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	}

	data, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(data)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	b := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(b)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(b.Bytes())
	dieOnErr(err)

	data, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(data)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
