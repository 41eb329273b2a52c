package config

import "errors"

var (
	// ErrBadDocument indicates YAML that cannot be decoded into a Document
	// or that is structurally inconsistent (duplicate names, bad axes).
	ErrBadDocument = errors.New("config: malformed document")

	// ErrUnknownNode indicates a transition, start or end naming an
	// undeclared node.
	ErrUnknownNode = errors.New("config: unknown node")

	// ErrUnknownKind indicates an unrecognized merge, transform, join,
	// activation or regularization name.
	ErrUnknownKind = errors.New("config: unknown kind")
)
