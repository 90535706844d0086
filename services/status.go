package services

// QuoteStatus is the closed set of quote lifecycle states.
type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "draft"
	StatusSent     QuoteStatus = "sent"
	StatusAccepted QuoteStatus = "accepted"
	StatusRejected QuoteStatus = "rejected"
	StatusExpired  QuoteStatus = "expired"
)

// AllStatuses lists every status in lifecycle order, for select inputs.
func AllStatuses() []QuoteStatus {
	return []QuoteStatus{StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusExpired}
}

// ParseStatus maps a stored string to a QuoteStatus. Unknown values report
// ok=false and fall back to draft.
func ParseStatus(s string) (QuoteStatus, bool) {
	switch QuoteStatus(s) {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusExpired:
		return QuoteStatus(s), true
	}
	return StatusDraft, false
}

// Label returns the French display label for the status.
func (s QuoteStatus) Label() string {
	switch s {
	case StatusSent:
		return "Envoyé"
	case StatusAccepted:
		return "Accepté"
	case StatusRejected:
		return "Refusé"
	case StatusExpired:
		return "Expiré"
	default:
		return "Brouillon"
	}
}

// BadgeClass returns the CSS class rendering the status badge. Label and
// BadgeClass are the only two places that switch on status; views use these
// instead of duplicating the mapping.
func (s QuoteStatus) BadgeClass() string {
	switch s {
	case StatusSent:
		return "badge badge-sent"
	case StatusAccepted:
		return "badge badge-accepted"
	case StatusRejected:
		return "badge badge-rejected"
	case StatusExpired:
		return "badge badge-expired"
	default:
		return "badge badge-draft"
	}
}
