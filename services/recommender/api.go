package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/reelgrid-io/web-api/models"
)

const (
	apiHostFlag   = "recommender-api-host"
	apiPortFlag   = "recommender-api-port"
	apiSecureFlag = "recommender-api-secure"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   apiHostFlag,
			Usage:  "recommender api host",
			EnvVar: "RECOMMENDER_API_HOST",
			Value:  "localhost",
		},
		cli.IntFlag{
			Name:   apiPortFlag,
			Usage:  "recommender api port",
			EnvVar: "RECOMMENDER_API_PORT",
			Value:  5000,
		},
		cli.BoolFlag{
			Name:   apiSecureFlag,
			Usage:  "recommender api secure (https)",
			EnvVar: "RECOMMENDER_API_SECURE",
		},
	)
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the recommendation backend's reply for both the per-seed and
// the bulk endpoints. A well-formed non-success status is a normal "no
// recommendations" outcome, not a transport fault.
type Response struct {
	Status          string  `json:"status"`
	Message         string  `json:"message"`
	Recommendations []int64 `json:"recommendations"`
}

func (s *Response) OK() bool {
	return s.Status == StatusSuccess
}

type seedRequest struct {
	SeedID string `json:"seed_id"`
}

type bulkItem struct {
	ID   string             `json:"id"`
	Type models.ContentType `json:"type"`
}

type bulkRequest struct {
	Watchlist []bulkItem `json:"watchlist"`
}

type Api struct {
	url            string
	cl             *http.Client
	prepareRequest func(r *http.Request) (*http.Request, error)
}

func New(c *cli.Context, cl *http.Client) *Api {
	host := c.String(apiHostFlag)
	port := c.Int(apiPortFlag)
	secure := c.Bool(apiSecureFlag)
	protocol := "http"
	if secure {
		protocol = "https"
	}
	u := fmt.Sprintf("%v://%v:%v", protocol, host, port)
	prepareRequest := func(r *http.Request) (*http.Request, error) {
		r.Header.Set("Accept", "application/json")
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	}
	log.Infof("recommender api endpoint %v", u)
	return &Api{
		url:            u,
		cl:             cl,
		prepareRequest: prepareRequest,
	}
}

// GetSimilar asks the backend for identifiers related to a single seed item.
func (api *Api) GetSimilar(ctx context.Context, t models.ContentType, seedID string) (*Response, error) {
	u := fmt.Sprintf("%s/recommend/%s", api.url, t)
	return api.post(ctx, u, &seedRequest{SeedID: seedID})
}

// GetBulk asks the backend for identifiers related to a group of watchlist
// items. Only the first page of identifiers is ever consumed.
func (api *Api) GetBulk(ctx context.Context, items []*models.WatchlistItem) (*Response, error) {
	req := &bulkRequest{Watchlist: make([]bulkItem, 0, len(items))}
	for _, item := range items {
		req.Watchlist = append(req.Watchlist, bulkItem{ID: item.ContentID, Type: item.Type})
	}
	u := fmt.Sprintf("%s/recommend/bulk", api.url)
	return api.post(ctx, u, req)
}

func (api *Api) post(ctx context.Context, rawURL string, body any) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", rawURL, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	req, err = api.prepareRequest(req)
	if err != nil {
		return nil, errors.Wrap(err, "prepare request")
	}

	resp, err := api.cl.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}
	return &result, nil
}
