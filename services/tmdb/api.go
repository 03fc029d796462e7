package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/reelgrid-io/web-api/models"
)

const (
	apiHostFlag     = "tmdb-api-host"
	apiPortFlag     = "tmdb-api-port"
	apiSecureFlag   = "tmdb-api-secure"
	apiTokenFlag    = "tmdb-api-token"
	apiLanguageFlag = "tmdb-api-language"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   apiHostFlag,
			Usage:  "tmdb api host",
			EnvVar: "TMDB_API_HOST",
			Value:  "api.themoviedb.org",
		},
		cli.IntFlag{
			Name:   apiPortFlag,
			Usage:  "tmdb api port",
			EnvVar: "TMDB_API_PORT",
			Value:  443,
		},
		cli.BoolTFlag{
			Name:   apiSecureFlag,
			Usage:  "tmdb api secure (https)",
			EnvVar: "TMDB_API_SECURE",
		},
		cli.StringFlag{
			Name:   apiTokenFlag,
			Usage:  "tmdb api read access token",
			Value:  "",
			EnvVar: "TMDB_API_TOKEN",
		},
		cli.StringFlag{
			Name:   apiLanguageFlag,
			Usage:  "tmdb api language",
			Value:  "en-US",
			EnvVar: "TMDB_API_LANGUAGE",
		},
	)
}

type Api struct {
	url            string
	language       string
	cl             *http.Client
	prepareRequest func(r *http.Request) (*http.Request, error)
}

func New(c *cli.Context, cl *http.Client) *Api {
	host := c.String(apiHostFlag)
	port := c.Int(apiPortFlag)
	secure := c.BoolT(apiSecureFlag)
	token := c.String(apiTokenFlag)
	language := c.String(apiLanguageFlag)
	if token == "" {
		return nil
	}
	protocol := "http"
	if secure {
		protocol = "https"
	}
	u := fmt.Sprintf("%v://%v:%v", protocol, host, port)
	prepareRequest := func(r *http.Request) (*http.Request, error) {
		r.Header.Set("Accept", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)
		return r, nil
	}
	log.Infof("tmdb api endpoint %v", u)
	return &Api{
		url:            u,
		language:       language,
		cl:             cl,
		prepareRequest: prepareRequest,
	}
}

// pathType maps the internal content type to the TMDB path segment.
func pathType(t models.ContentType) string {
	if t == models.ContentTypeShow {
		return "tv"
	}
	return "movie"
}

func (api *Api) GetDetails(ctx context.Context, t models.ContentType, id string) (*RawRecord, error) {
	var record RawRecord
	u := fmt.Sprintf("%s/3/%s/%s", api.url, pathType(t), url.PathEscape(id))
	if err := api.get(ctx, u, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (api *Api) GetCredits(ctx context.Context, t models.ContentType, id string) (*Credits, error) {
	var credits Credits
	u := fmt.Sprintf("%s/3/%s/%s/credits", api.url, pathType(t), url.PathEscape(id))
	if err := api.get(ctx, u, nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// GetCatalog fetches the first page of a named TMDB list feed
// (now_playing, top_rated, upcoming, airing_today, on_the_air).
func (api *Api) GetCatalog(ctx context.Context, t models.ContentType, list string) (*CatalogResponse, error) {
	var resp CatalogResponse
	u := fmt.Sprintf("%s/3/%s/%s", api.url, pathType(t), url.PathEscape(list))
	if err := api.get(ctx, u, url.Values{"page": []string{"1"}}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTrending fetches the trending feed. Movies use the day window and shows
// the week window, matching the feeds the product was built around.
func (api *Api) GetTrending(ctx context.Context, t models.ContentType) (*CatalogResponse, error) {
	window := "week"
	if t == models.ContentTypeMovie {
		window = "day"
	}
	var resp CatalogResponse
	u := fmt.Sprintf("%s/3/trending/%s/%s", api.url, pathType(t), window)
	if err := api.get(ctx, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search queries TMDB. A nil type searches across movies and shows combined
// (multi search), whose results carry a media_type discriminant instead.
func (api *Api) Search(ctx context.Context, query string, t *models.ContentType) (*CatalogResponse, error) {
	target := "multi"
	if t != nil {
		target = pathType(*t)
	}
	var resp CatalogResponse
	u := fmt.Sprintf("%s/3/search/%s", api.url, target)
	q := url.Values{
		"query":         []string{query},
		"include_adult": []string{"false"},
		"page":          []string{"1"},
	}
	if err := api.get(ctx, u, q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (api *Api) get(ctx context.Context, rawURL string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}

	q := req.URL.Query()
	q.Set("language", api.language)
	for k, vs := range query {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	req.URL.RawQuery = q.Encode()

	req, err = api.prepareRequest(req)
	if err != nil {
		return errors.Wrap(err, "prepare request")
	}

	resp, err := api.cl.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
