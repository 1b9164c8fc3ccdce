package clients

import (
	"fmt"
	"net/http"
	"testing"

	"lumiere/pkg/model"
	"lumiere/test/integration/testutil"
)

type clientEnvelope struct {
	Data model.Client `json:"data"`
}

type occupancyEnvelope struct {
	Data []model.Client `json:"data"`
}

func createClient(t *testing.T, client *testutil.Client, body model.Client) model.Client {
	t.Helper()

	resp := client.POST(t, "/api/v1/clients", body)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created clientEnvelope
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if created.Data.ID == "" {
		t.Fatal("expected ID to be set")
	}
	return created.Data
}

func TestClientLifecycle(t *testing.T) {
	testutil.SkipUnlessIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createClient(t, client, testutil.ValidClient())

	// Read back
	resp := client.GET(t, "/api/v1/clients/id/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	// Partial update leaves the rest of the dossier untouched
	resp = client.PATCH(t, "/api/v1/clients/id/"+created.ID, map[string]string{"first_name": "Renamed"})
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, "/api/v1/clients/id/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var fetched clientEnvelope
	if err := resp.DecodeJSON(&fetched); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if fetched.Data.FirstName != "Renamed" {
		t.Errorf("expected first name Renamed, got %q", fetched.Data.FirstName)
	}
	if fetched.Data.LastName != created.LastName {
		t.Errorf("expected last name untouched, got %q", fetched.Data.LastName)
	}

	// Delete removes the document
	resp = client.DELETE(t, "/api/v1/clients/id/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	if count := mongo.CountDocuments(t, testutil.ClientsCollection); count != 0 {
		t.Errorf("expected 0 documents after delete, got %d", count)
	}
}

func TestReservationQuota(t *testing.T) {
	testutil.SkipUnlessIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	// Fill the day up to the default quota of 3
	for i := 1; i <= 3; i++ {
		c := createClient(t, client, testutil.NumberedClient(i))
		resp := client.POST(t,
			fmt.Sprintf("/api/v1/clients/id/%s/reservations", c.ID),
			testutil.ReservationFor("2025-07-01", "2025-07-03"),
		)
		testutil.AssertStatusCode(t, resp, http.StatusCreated)
	}

	// The fourth admission must be refused
	extra := createClient(t, client, testutil.NumberedClient(4))
	resp := client.POST(t,
		fmt.Sprintf("/api/v1/clients/id/%s/reservations", extra.ID),
		testutil.ReservationFor("2025-07-02", "2025-07-02"),
	)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
	testutil.AssertContains(t, resp, "2025-07-02")

	// Occupancy on a covered day lists all three holders
	resp = client.GET(t, "/api/v1/occupancy?date=2025-07-02")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var occ occupancyEnvelope
	if err := resp.DecodeJSON(&occ); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(occ.Data) != 3 {
		t.Errorf("expected 3 occupants, got %d", len(occ.Data))
	}
}

func TestReservationRemovalFreesCapacity(t *testing.T) {
	testutil.SkipUnlessIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	var holders []model.Client
	var reservationIDs []string
	for i := 1; i <= 3; i++ {
		c := createClient(t, client, testutil.NumberedClient(i))
		resp := client.POST(t,
			fmt.Sprintf("/api/v1/clients/id/%s/reservations", c.ID),
			testutil.ReservationFor("2025-08-10", "2025-08-12"),
		)
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var res struct {
			Data model.Reservation `json:"data"`
		}
		if err := resp.DecodeJSON(&res); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		holders = append(holders, c)
		reservationIDs = append(reservationIDs, res.Data.ID)
	}

	// Remove one stay; removal never hits the quota
	resp := client.DELETE(t,
		fmt.Sprintf("/api/v1/clients/id/%s/reservations/%s", holders[0].ID, reservationIDs[0]),
	)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	// Capacity is free again
	extra := createClient(t, client, testutil.NumberedClient(4))
	resp = client.POST(t,
		fmt.Sprintf("/api/v1/clients/id/%s/reservations", extra.ID),
		testutil.ReservationFor("2025-08-11", "2025-08-11"),
	)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
}

func TestReplaceReservationsBypassesQuota(t *testing.T) {
	testutil.SkipUnlessIntegration(t)
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	for i := 1; i <= 3; i++ {
		c := createClient(t, client, testutil.NumberedClient(i))
		resp := client.POST(t,
			fmt.Sprintf("/api/v1/clients/id/%s/reservations", c.ID),
			testutil.ReservationFor("2025-09-01", "2025-09-05"),
		)
		testutil.AssertStatusCode(t, resp, http.StatusCreated)
	}

	// A wholesale replacement set is accepted without admission checks
	// (the default; QUOTA_ON_SYNC=true changes this)
	extra := createClient(t, client, testutil.NumberedClient(4))
	resp := client.PUT(t,
		fmt.Sprintf("/api/v1/clients/id/%s/reservations", extra.ID),
		[]model.Reservation{testutil.ReservationFor("2025-09-02", "2025-09-03")},
	)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
}
