// File: internal/user/model.go
package user

import (
	"bytes"
	"encoding/json"
)

// ProfileUpdate is the caller's update-user body. It is forwarded to the upstream service as sent.
type ProfileUpdate json.RawMessage

// IsObject reports whether the update is a JSON object (null, arrays and scalars are rejected).
func (p ProfileUpdate) IsObject() bool {
	trimmed := bytes.TrimSpace(p)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	var fields map[string]json.RawMessage
	return json.Unmarshal(trimmed, &fields) == nil
}
