// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package msgbus

// Origin tells which side published a message.
type Origin uint8

const (
	// OriginHost marks messages published by host code.
	OriginHost Origin = iota

	// OriginScript marks messages published from the script environment.
	OriginScript
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginHost:
		return "host"
	case OriginScript:
		return "script"
	default:
		return "unknown"
	}
}

// Message is a named payload. Data is empty when the publisher sent none.
type Message struct {
	Name   string
	Data   string
	Origin Origin
}
