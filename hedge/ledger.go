// hedge/ledger.go
package hedge

import "sort"

// Ledger is the authoritative record of which hedge contract is held for
// which underlying: at most one contract per underlying. The ledger never
// expires entries on its own; closure is always driven by the engine's
// reconciliation.
type Ledger struct {
	entries map[string]string // underlying -> contract id
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]string)}
}

// Get returns the contract id held for an underlying, if any.
func (l *Ledger) Get(underlying string) (string, bool) {
	id, ok := l.entries[underlying]
	return id, ok
}

// Set records (or replaces) the hedge contract held for an underlying.
func (l *Ledger) Set(underlying, contractID string) {
	l.entries[underlying] = contractID
}

// Clear removes the entry for one underlying.
func (l *Ledger) Clear(underlying string) {
	delete(l.entries, underlying)
}

// ClearAll empties the ledger. Used on the global hedge-off transition.
func (l *Ledger) ClearAll() {
	l.entries = make(map[string]string)
}

// Len returns the number of hedged underlyings.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Underlyings returns the hedged underlyings in sorted order, so that
// iteration over the ledger is deterministic.
func (l *Ledger) Underlyings() []string {
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns a copy of the full mapping for reporting.
func (l *Ledger) Entries() map[string]string {
	out := make(map[string]string, len(l.entries))
	for k, v := range l.entries {
		out[k] = v
	}
	return out
}
