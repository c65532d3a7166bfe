package mcpconfig

import (
	"encoding/json"
	"reflect"
)

// ChangeKind classifies a server entry in a [Diff].
type ChangeKind string

const (
	Added   ChangeKind = "add"
	Updated ChangeKind = "update"
)

// Change is one added or updated server key.
type Change struct {
	Key  string     `json:"key"`
	Kind ChangeKind `json:"action"`
}

// Diff lists the servers in after that are new or structurally different
// compared to before, in after's order. Removals cannot happen because the
// installer never deletes entries, so they are not reported.
func Diff(before, after *Document) []Change {
	var changes []Change
	for _, key := range after.ServerKeys() {
		a, _ := after.serverRaw(key)
		b, ok := before.serverRaw(key)
		switch {
		case !ok:
			changes = append(changes, Change{Key: key, Kind: Added})
		case !jsonEqual(a, b):
			changes = append(changes, Change{Key: key, Kind: Updated})
		}
	}
	return changes
}

func jsonEqual(a, b json.RawMessage) bool {
	var va, vb any
	if err := json.Unmarshal(a, &va); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &vb); err != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}
