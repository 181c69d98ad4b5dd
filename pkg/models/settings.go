package models

import "encoding/json"

// Settings is a user's client settings as an opaque property map. The
// server stores and merges properties without interpreting them; the
// web UI owns the schema.
type Settings map[string]json.RawMessage
