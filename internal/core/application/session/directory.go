package session

import (
	"strings"
	"sync"
)

// Directory remembers which call each voice bridge connection carries.
// It implements ports.CallDirectory.
type Directory struct {
	mu    sync.RWMutex
	calls map[string]string
}

func NewDirectory() *Directory {
	return &Directory{calls: map[string]string{}}
}

// Bind associates connectionID with callSID. Blank values are ignored.
func (d *Directory) Bind(connectionID, callSID string) {
	connectionID = strings.TrimSpace(connectionID)
	callSID = strings.TrimSpace(callSID)
	if connectionID == "" || callSID == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls[connectionID] = callSID
}

func (d *Directory) Unbind(connectionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.calls, strings.TrimSpace(connectionID))
}

func (d *Directory) Lookup(connectionID string) (string, bool) {
	connectionID = strings.TrimSpace(connectionID)
	if connectionID == "" {
		return "", false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	callSID, ok := d.calls[connectionID]
	return callSID, ok
}
