package viewer

import (
	"context"

	"github.com/ziadkadry99/docview/internal/toc"
)

// Msg is an event consumed by App.Update.
type Msg interface{}

// Cmd performs I/O off the update loop and reports back with a Msg.
// A Cmd must not touch App state.
type Cmd func(ctx context.Context) Msg

// TOCLoadedMsg carries the result of loading the table of contents.
type TOCLoadedMsg struct {
	Tree []toc.Entry
	Err  error
}

// ActivateMsg is sent when the user selects a link in the sidebar.
type ActivateMsg struct {
	ID string
}

// SearchMsg is sent on every change to the search query.
type SearchMsg struct {
	Query string
}

// HashChangeMsg is sent when the location hash changes outside the app,
// e.g. through back/forward navigation.
type HashChangeMsg struct {
	Hash string
}

// DocLoadedMsg carries the result of a document load started with sequence
// number Seq.
type DocLoadedMsg struct {
	Seq  uint64
	Path string
	HTML string
	Err  error
}

// ResizeMsg reports the viewport width in CSS pixels.
type ResizeMsg struct {
	Width int
}

// ToggleSidebarMsg flips the sidebar open or closed.
type ToggleSidebarMsg struct{}

// OutsideClickMsg is a click that landed outside the sidebar and its toggle.
type OutsideClickMsg struct{}
