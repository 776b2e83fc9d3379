package ui

import (
	"trainai/model"
	"trainai/storage"
)

// sessionUpdateMsg signals that the chat session changed; the new state is
// read via Snapshot.
type sessionUpdateMsg struct{}

type conversationsLoadedMsg struct {
	conversations []storage.Conversation
	err           error
}

type exercisesLoadedMsg struct {
	exercises []model.Exercise
	err       error
}

type clipboardCopiedMsg struct {
	err error
}

// flashClearMsg clears the transient status bar flash.
type flashClearMsg struct{}
