package testutil

import (
	"fmt"

	"lumiere/pkg/model"
)

type ClientBuilder struct {
	c model.Client
}

func NewClientBuilder() *ClientBuilder {
	return &ClientBuilder{
		c: model.Client{
			FirstName: "Test",
			LastName:  "Client",
			Phone:     "+33612345678",
			Country:   "France",
		},
	}
}

func (b *ClientBuilder) WithName(first, last string) *ClientBuilder {
	b.c.FirstName = first
	b.c.LastName = last
	return b
}

func (b *ClientBuilder) WithPhone(phone string) *ClientBuilder {
	b.c.Phone = phone
	return b
}

func (b *ClientBuilder) WithCountry(country string) *ClientBuilder {
	b.c.Country = country
	return b
}

func (b *ClientBuilder) WithNotes(notes string) *ClientBuilder {
	b.c.Notes = notes
	return b
}

func (b *ClientBuilder) WithReservations(reservations ...model.Reservation) *ClientBuilder {
	b.c.Reservations = reservations
	return b
}

func (b *ClientBuilder) Build() model.Client {
	return b.c
}

func ValidClient() model.Client {
	return NewClientBuilder().Build()
}

// NumberedClient yields distinct clients for multi-occupancy scenarios.
func NumberedClient(n int) model.Client {
	return NewClientBuilder().
		WithName(fmt.Sprintf("Guest%d", n), "Tester").
		WithPhone(fmt.Sprintf("+3361234%04d", n)).
		Build()
}

func ReservationFor(start, end string) model.Reservation {
	return model.Reservation{
		Start:  start,
		End:    end,
		Status: model.StatusConfirmed,
	}
}
