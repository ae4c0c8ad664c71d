// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package msgbus

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultCallbackNamespace is the global object holding script callbacks.
const DefaultCallbackNamespace = "webUICallbacks"

// ScriptRunner executes script text in the embedded environment without
// waiting for a result.
type ScriptRunner interface {
	ExecuteScript(script string) error
}

// Outbound pushes host messages into the script environment.
type Outbound struct {
	runner    ScriptRunner
	namespace string
}

// NewOutbound creates an outbound channel calling callbacks under
// window[namespace]. An empty namespace selects DefaultCallbackNamespace.
func NewOutbound(runner ScriptRunner, namespace string) *Outbound {
	if namespace == "" {
		namespace = DefaultCallbackNamespace
	}
	return &Outbound{runner: runner, namespace: namespace}
}

// Namespace returns the callback namespace.
func (o *Outbound) Namespace() string {
	return o.namespace
}

// Push calls window[namespace][name](data) in the script environment if
// that callback is defined. It does not observe the callback's result.
func (o *Outbound) Push(name string, data any) error {
	script, err := EncodeScript(o.namespace, name, data)
	if err != nil {
		return err
	}
	return o.runner.ExecuteScript(script)
}

// outboundMessage is the JSON envelope embedded in the script.
type outboundMessage struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}

// EncodeScript returns the script text Push executes. data is embedded as a
// JSON value: strings stay strings, json.RawMessage is inserted verbatim and
// nil becomes null.
func EncodeScript(namespace, name string, data any) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	ns, err := json.Marshal(namespace)
	if err != nil {
		return "", err
	}
	msg, err := json.Marshal(outboundMessage{Name: name, Data: data})
	if err != nil {
		return "", fmt.Errorf("msgbus: encode %q: %w", name, err)
	}

	var sb strings.Builder
	sb.WriteString(`(function(m){var ns=window[`)
	sb.Write(ns)
	sb.WriteString(`];if(ns&&typeof ns[m.name]==="function"){ns[m.name](m.data);}})(`)
	sb.Write(msg)
	sb.WriteString(`);`)
	return sb.String(), nil
}
