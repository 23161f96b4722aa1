package cmn

import (
	"strconv"
	"strings"
	"time"
)

// Timing one entry of a Server-Timing header
type Timing struct {
	Name        string
	Description string
	Elapsed     time.Duration
}

// Timings collects the phases of a request for the Server-Timing header, entries keep the
// order they were measured in.
//
// https://www.w3.org/TR/server-timing/
type Timings []Timing

// Measure runs fn and appends its elapsed time under name
func (t *Timings) Measure(name string, description string, fn func()) {
	begin := time.Now()
	fn()
	t.Add(name, description, time.Since(begin))
}

func (t *Timings) Add(name string, description string, elapsed time.Duration) {
	*t = append(*t, Timing{Name: name, Description: description, Elapsed: elapsed})
}

// Header read;dur=0.123;desc="Read asset", the duration in milliseconds
func (t Timings) Header() string {
	entries := make([]string, 0, len(t))
	for _, timing := range t {
		name := strings.TrimSpace(timing.Name)
		if name == "" {
			continue
		}
		entry := name
		if timing.Elapsed > 0 {
			entry += ";dur=" + strconv.FormatFloat(float64(timing.Elapsed.Microseconds())/1000, 'f', 3, 64)
		}
		if description := strings.ReplaceAll(strings.TrimSpace(timing.Description), `"`, ""); description != "" {
			entry += `;desc="` + description + `"`
		}
		entries = append(entries, entry)
	}
	return strings.Join(entries, ", ")
}
