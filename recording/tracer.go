package recording

import (
	"time"

	"github.com/rs/xid"

	"github.com/sarchlab/hmem/buf"
)

// bufferEventEntry represents one buffer lifecycle event in the database.
type bufferEventEntry struct {
	ID        string
	Buffer    string
	What      string
	FromSpace string
	ToSpace   string
	Count     int
	NumBytes  int
	UnixNano  int64
}

// A Tracer is a buffer hook that records allocation, release, and transfer
// events into a Recorder table.
type Tracer struct {
	recorder Recorder
	name     string
	table    string
}

// NewTracer creates a tracer that files events under the given buffer name.
// The events table is created on first use per recorder.
func NewTracer(recorder Recorder, bufferName string) *Tracer {
	t := &Tracer{
		recorder: recorder,
		name:     bufferName,
		table:    "buffer_events",
	}

	if !tableExists(recorder, t.table) {
		recorder.CreateTable(t.table, bufferEventEntry{})
	}

	return t
}

func tableExists(recorder Recorder, name string) bool {
	for _, t := range recorder.ListTables() {
		if t == name {
			return true
		}
	}

	return false
}

// Func records one hook invocation as a row.
func (t *Tracer) Func(ctx buf.HookCtx) {
	entry := bufferEventEntry{
		ID:       xid.New().String(),
		Buffer:   t.name,
		What:     ctx.Pos.Name,
		UnixNano: time.Now().UnixNano(),
	}

	switch detail := ctx.Detail.(type) {
	case buf.AllocDetail:
		entry.FromSpace = detail.Space.String()
		entry.ToSpace = detail.Space.String()
		entry.Count = detail.Count
		entry.NumBytes = detail.NumBytes
	case buf.TransferDetail:
		entry.FromSpace = detail.From.String()
		entry.ToSpace = detail.To.String()
		entry.NumBytes = detail.NumBytes
	}

	t.recorder.InsertData(t.table, entry)
}
