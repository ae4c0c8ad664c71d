// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package msgbus

import (
	"encoding/json"
	"fmt"
)

// DefaultBindingName is the global name scripts use to reach the host.
const DefaultBindingName = "webUIMessage"

// Binding is the object registered into a script environment. Scripts call
// it from any engine goroutine to publish messages to the host.
type Binding struct {
	bus *Bus
}

// NewBinding returns a binding that publishes to bus.
func NewBinding(bus *Bus) *Binding {
	return &Binding{bus: bus}
}

// PushMessageToGame publishes a script message. Strings are passed through;
// other values are JSON-encoded and nil becomes the empty string.
func (b *Binding) PushMessageToGame(name string, data any) error {
	payload, err := encodeData(data)
	if err != nil {
		return fmt.Errorf("msgbus: message %q: %w", name, err)
	}
	return b.bus.PublishFrom(OriginScript, name, payload)
}

func encodeData(data any) (string, error) {
	switch v := data.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
