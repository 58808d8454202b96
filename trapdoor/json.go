package trapdoor

import (
	"encoding/hex"
	"encoding/json"
)

// traceJSON is used for JSON serialization
type traceJSON struct {
	Signal        string `json:"signal"`
	Digest        string `json:"digest"`
	Keystream     string `json:"keystream"`
	TrapdoorBytes string `json:"trapdoor_bytes"`
	LittleEndian  string `json:"little_endian"`
	Trapdoor      string `json:"trapdoor"`
}

// MarshalJSON implements custom JSON marshaling for Trace.
// Byte values are hex, integers are decimal strings.
func (t *Trace) MarshalJSON() ([]byte, error) {
	return json.Marshal(traceJSON{
		Signal:        hex.EncodeToString(t.Signal),
		Digest:        t.Digest.Hex(),
		Keystream:     hex.EncodeToString(t.Keystream),
		TrapdoorBytes: hex.EncodeToString(t.TrapdoorBytes),
		LittleEndian:  t.LittleEndian.String(),
		Trapdoor:      t.Trapdoor.String(),
	})
}
