package kafka

// Topics for dossier lifecycle events. Client and reservation events
// share one topic keyed by client ID so a dossier's history stays in
// partition order.
const (
	TopicDossierEvents = "dossier-events"
	TopicDLQ           = "dlq-lumiere"
)

// Event types carried in the event-type header.
const (
	EventClientCreated = "client.created"
	EventClientUpdated = "client.updated"
	EventClientDeleted = "client.deleted"

	EventReservationAdmitted = "reservation.admitted"
	EventReservationRemoved  = "reservation.removed"
	EventReservationReplaced = "reservation.replaced"
)

// ClientEvent is published on client lifecycle changes. Key is the
// client ID so events for one dossier stay ordered.
type ClientEvent struct {
	ClientID  string `json:"client_id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReservationEvent is published on admission, removal, and wholesale
// replacement of a client's stays.
type ReservationEvent struct {
	ClientID      string `json:"client_id"`
	ReservationID string `json:"reservation_id,omitempty"`
	Start         string `json:"start,omitempty"`
	End           string `json:"end,omitempty"`
	Status        string `json:"status,omitempty"`
	Count         int    `json:"count,omitempty"` // reservation count after a replace
}
