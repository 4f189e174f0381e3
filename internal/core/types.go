package core

import "context"

const (
	BotName   = "CaliAndo"
	UserAgent = "CaliAndo-Bot/0.1"
	Version   = "0.1.0"
)

// Candidate is one ranked item returned by the semantic search backend.
// The payload is opaque to the dispatcher: SourceKind plus ReferenceID
// locate the extended detail in the catalog.
type Candidate struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	SourceKind  string `json:"fuente"`
	ReferenceID int64  `json:"referencia_id"`
}

// Detail is the extended record for a candidate. Which fields are
// populated depends on the candidate's source.
type Detail struct {
	Name         string
	Description  string
	Location     string
	Category     string
	SocialLinks  string
	Website      string
	Zone         string
	AccessPolicy string
	Price        string
	Link         string
}

// LiveEvent is one entry from the live-events lookup.
type LiveEvent struct {
	Title       string
	Date        string
	Venue       string
	Description string
	Link        string
}

// Saying is one entry of the regional sayings collection.
type Saying struct {
	Phrase  string
	Meaning string
}

// ButtonOption is a quick-reply choice offered to the user.
type ButtonOption struct {
	ID    string
	Label string
}

// Inbound message kinds as delivered by a transport.
const (
	KindText   = "text"
	KindButton = "interactive"
)

// InboundMessage is one logical message from a user, already stripped
// of transport-specific framing.
type InboundMessage struct {
	UserID   string
	Kind     string
	Text     string
	ButtonID string
}

// Messenger delivers outbound messages to a user. Implementations are
// best-effort: delivery failures are logged, not retried indefinitely.
type Messenger interface {
	SendText(ctx context.Context, userID, text string) error
	SendButtons(ctx context.Context, userID, prompt string, options []ButtonOption) error
}
