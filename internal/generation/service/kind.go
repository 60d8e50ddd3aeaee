package service

import "strings"

// Kind is the generation mode, resolved once from the request instead
// of re-checking optional fields at every branch.
type Kind int

const (
	// KindSite builds a single-file website (the default mode).
	KindSite Kind = iota
	// KindChat answers as a conversational assistant.
	KindChat
	// KindReactConvert converts already-generated HTML into a JSX component.
	KindReactConvert
)

func (k Kind) String() string {
	switch k {
	case KindChat:
		return "chat"
	case KindReactConvert:
		return "react"
	default:
		return "site"
	}
}

// Billable reports whether this mode costs a credit. React conversion
// is free: the HTML it converts was paid for when it was generated.
func (k Kind) Billable() bool {
	return k != KindReactConvert
}

// Request carries the raw generation parameters as received on the wire.
type Request struct {
	Prompt         string
	UserID         string
	ChatMode       bool
	PunjabiMode    bool
	TargetLanguage string
	ImageData      string
}

// ResolveKind picks the mode. Target language wins over chat mode;
// image data is not a mode of its own but a pre-pass handled by the
// orchestrator.
func ResolveKind(req Request) Kind {
	switch {
	case strings.EqualFold(strings.TrimSpace(req.TargetLanguage), "react"):
		return KindReactConvert
	case req.ChatMode:
		return KindChat
	default:
		return KindSite
	}
}
