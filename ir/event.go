// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// EventType is the closed set of bindable event kinds (§3.1). Narrowed
// from the wider Kryon-ecosystem EventType taxonomy (click/press/
// release/long-press/hover/focus/blur/change/submit/custom, see
// other_examples krb/types.go) to the subset this specification names.
type EventType int8

const (
	EventClick EventType = iota
	EventHover
	EventFocus
	EventBlur
	EventKey
	EventScroll
	EventTimer
	EventCustom
)

// InlineHandlerLang is the closed set of source languages an inline
// event handler body may be written in (§9 "Inline handler source").
type InlineHandlerLang int8

const (
	HandlerLangNone InlineHandlerLang = iota
	HandlerLangNim
	HandlerLangC
	HandlerLangLua
	HandlerLangWasm
	HandlerLangNative
)

// InlineHandler is an opaque verbatim event-handler body plus the
// variables it captures. Execution of this source is out of core scope
// (§9): the core only stores and round-trips it.
type InlineHandler struct {
	Lang      InlineHandlerLang `json:"lang"`
	Source    string            `json:"source"`
	Captures  []string          `json:"captures,omitempty"`
}

// EventBinding associates a component event with a logic identifier
// (resolved against BytecodeMetadata.Functions) and, optionally, an
// inline handler body (§3.1).
type EventBinding struct {
	Type    EventType      `json:"type"`
	LogicID string         `json:"logic_id,omitempty"`
	Inline  *InlineHandler `json:"inline,omitempty"`
}

// Clone deep-copies e for Component.DeepCopy (§4.1).
func (e EventBinding) Clone() EventBinding {
	cp := e
	if e.Inline != nil {
		ih := *e.Inline
		ih.Captures = append([]string(nil), e.Inline.Captures...)
		cp.Inline = &ih
	}
	return cp
}
