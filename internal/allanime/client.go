package allanime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/justchokingaround/aniseek/internal/config"
	"github.com/justchokingaround/aniseek/internal/httpclient"
	"github.com/justchokingaround/aniseek/pkg/types"
)

// TransportError is a network, HTTP or decoding failure talking to the API
type TransportError struct {
	Query string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Query, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ShowsResponse is the payload of every shows(...) query
type ShowsResponse struct {
	Shows struct {
		Edges []types.Title `json:"edges"`
	} `json:"shows"`
}

// ShowDetails is a title with the extra fields of the show(...) query
type ShowDetails struct {
	types.Title
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Genres      []string `json:"genres"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client talks to the allanime GraphQL API
type Client struct {
	http     *httpclient.Client
	endpoint string
	referer  string
	logger   *slog.Logger
}

// NewClient creates an API client from the api section of the config
func NewClient(hc *httpclient.Client, cfg config.APIConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	hc.SetHeader("Referer", cfg.BaseURL)
	return &Client{
		http:     hc,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		referer:  cfg.BaseURL,
		logger:   logger.With("component", "allanime"),
	}
}

// Do runs q and decodes its data object into out. A nil out discards the payload.
func (c *Client) Do(ctx context.Context, q Query, out any) error {
	variables, err := json.Marshal(q.Variables)
	if err != nil {
		return &TransportError{Query: q.Name, Err: fmt.Errorf("failed to marshal variables: %w", err)}
	}

	resp, err := c.http.Get(ctx, c.endpoint+"/api",
		map[string]string{
			"variables": string(variables),
			"query":     q.Document,
		},
		nil,
	)
	if err != nil {
		return &TransportError{Query: q.Name, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return &TransportError{Query: q.Name, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if len(env.Errors) > 0 {
		return &TransportError{Query: q.Name, Err: fmt.Errorf("graphql: %s", env.Errors[0].Message)}
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &TransportError{Query: q.Name, Err: fmt.Errorf("response has no data")}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &TransportError{Query: q.Name, Err: fmt.Errorf("failed to decode data: %w", err)}
	}
	return nil
}

// Shows runs a shows(...) query and returns its edges
func (c *Client) Shows(ctx context.Context, q Query) ([]types.Title, error) {
	var resp ShowsResponse
	if err := c.Do(ctx, q, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug("shows query done", "query", q.Name, "page", q.Variables["page"], "count", len(resp.Shows.Edges))
	return resp.Shows.Edges, nil
}

// Show fetches details of a single title
func (c *Client) Show(ctx context.Context, id string) (*ShowDetails, error) {
	var resp struct {
		Show *ShowDetails `json:"show"`
	}
	if err := c.Do(ctx, QueryBuilder{}.Show(id), &resp); err != nil {
		return nil, err
	}
	if resp.Show == nil {
		return nil, &TransportError{Query: "show", Err: fmt.Errorf("title %s not found", id)}
	}
	resp.Show.Description = PlainText(resp.Show.Description)
	return resp.Show, nil
}

// TitleURL is the site page of a title
func (c *Client) TitleURL(id string) string {
	return TitleURL(c.referer, id)
}

// TitleURL joins the site base URL and a title id
func TitleURL(baseURL, id string) string {
	return fmt.Sprintf("%s/anime/%s", strings.TrimRight(baseURL, "/"), id)
}
