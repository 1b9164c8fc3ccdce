package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"lumiere/pkg/model"
)

// ClientsClient talks to the dossier API. It is used by the monitor
// command and the integration tests.
type ClientsClient struct {
	httpClient *HttpClient
}

func NewClientsClient(baseUrl string) *ClientsClient {
	return &ClientsClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

// Login exchanges the shared password for a session token and attaches
// it to the underlying HTTP client.
func (c *ClientsClient) Login(password string) error {
	resp, err := c.httpClient.POST("/api/v1/auth/login", map[string]string{"password": password})
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("login failed: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return fmt.Errorf("could not decode login response: %w", err)
	}

	c.httpClient.SetToken(wrapper.Data.Token)
	return nil
}

func (c *ClientsClient) WaitForHealthy(maxWait time.Duration) error {
	return c.httpClient.WaitForHealthy(maxWait)
}

func (c *ClientsClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/clients", body)
}

func (c *ClientsClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/clients?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *ClientsClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/clients/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *ClientsClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/clients/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *ClientsClient) Delete(id string) (*Response, error) {
	path := "/api/v1/clients/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *ClientsClient) AddReservation(clientID string, body any) (*Response, error) {
	path := "/api/v1/clients/id/" + url.PathEscape(clientID) + "/reservations"
	return c.httpClient.POST(path, body)
}

func (c *ClientsClient) ReplaceReservations(clientID string, body any) (*Response, error) {
	path := "/api/v1/clients/id/" + url.PathEscape(clientID) + "/reservations"
	return c.httpClient.PUT(path, body)
}

func (c *ClientsClient) RemoveReservation(clientID, reservationID string) (*Response, error) {
	path := "/api/v1/clients/id/" + url.PathEscape(clientID) + "/reservations/" + url.PathEscape(reservationID)
	return c.httpClient.DELETE(path)
}

func (c *ClientsClient) Occupancy(date, exclude string) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)
	if exclude != "" {
		q.Set("exclude", exclude)
	}
	return c.httpClient.GET("/api/v1/occupancy?" + q.Encode())
}

func (c *ClientsClient) PresignAttachment(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/attachments/presign", body)
}

func (c *ClientsClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/clients", rawBody)
}

func (c *ClientsClient) UpdateRaw(id string, rawBody []byte) (*Response, error) {
	path := "/api/v1/clients/id/" + url.PathEscape(id)
	return c.httpClient.PATCHRaw(path, rawBody)
}

func (c *ClientsClient) DecodeClient(resp *Response) (*model.Client, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode client wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var cl model.Client
	if err := json.Unmarshal(wrapper.Data, &cl); err != nil {
		return nil, fmt.Errorf("could not decode client json:\n%+v\n%s", resp.ToString(), err)
	}

	return &cl, nil
}

func (c *ClientsClient) DecodeClients(resp *Response) ([]*model.Client, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var clients []*model.Client
	if err := json.Unmarshal(wrapper.Data, &clients); err != nil {
		return nil, nil, fmt.Errorf("could not decode client list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return clients, metadata, nil
}

// Snapshot fetches every client page by page. The monitor polls this to
// detect dossier changes.
func (c *ClientsClient) Snapshot() ([]*model.Client, error) {
	const pageSize = 100

	var all []*model.Client
	var offset int64
	for {
		resp, err := c.GetAll(pageSize, offset)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != 200 {
			return nil, fmt.Errorf("snapshot fetch failed: %s", GetErrorMessage(resp))
		}

		page, meta, err := c.DecodeClients(resp)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		offset += int64(len(page))
		if len(page) == 0 || offset >= meta.TotalCount {
			return all, nil
		}
	}
}
