package model

import "time"

// Client is a customer dossier. It exclusively owns its reservation
// collection; deleting the client removes the reservations with it.
type Client struct {
	ID             string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	FirstName      string        `json:"first_name" bson:"first_name" validate:"required,min=1,max=100"`
	LastName       string        `json:"last_name" bson:"last_name" validate:"required,min=1,max=100"`
	Phone          string        `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Country        string        `json:"country,omitempty" bson:"country,omitempty" validate:"omitempty,max=100"`
	Notes          string        `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	HasAttachment  bool          `json:"has_attachment" bson:"has_attachment"`
	AttachmentURL  string        `json:"attachment_url,omitempty" bson:"attachment_url,omitempty" validate:"omitempty,url"`
	AttachmentName string        `json:"attachment_name,omitempty" bson:"attachment_name,omitempty" validate:"omitempty,max=255"`
	AttachmentKey  string        `json:"attachment_key,omitempty" bson:"attachment_key,omitempty" validate:"omitempty,max=512"`
	Reservations   []Reservation `json:"reservations" bson:"reservations" validate:"omitempty,dive"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// ClientUpdate is a partial-merge patch. Nil pointers leave the field
// untouched; a non-nil Reservations pointer replaces the collection
// wholesale.
type ClientUpdate struct {
	FirstName      string         `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName       string         `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone          *string        `json:"phone,omitempty" validate:"omitempty"`
	Country        *string        `json:"country,omitempty" validate:"omitempty"`
	Notes          *string        `json:"notes,omitempty" validate:"omitempty"`
	HasAttachment  *bool          `json:"has_attachment,omitempty"`
	AttachmentURL  *string        `json:"attachment_url,omitempty" validate:"omitempty"`
	AttachmentName *string        `json:"attachment_name,omitempty" validate:"omitempty"`
	AttachmentKey  *string        `json:"attachment_key,omitempty" validate:"omitempty"`
	Reservations   *[]Reservation `json:"reservations,omitempty" validate:"omitempty,dive"`
}
