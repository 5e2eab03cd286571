package websocket

import "errors"

var (
	ErrClientQueueFull     = errors.New("client message queue is full")
	ErrClientNotRegistered = errors.New("client is not registered")
	ErrInvalidMessage      = errors.New("invalid message format")
	ErrUnknownEvent        = errors.New("unknown event")
)
