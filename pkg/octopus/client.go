package octopus

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nergy-se/agilerun/pkg/api/v1/config"
	"github.com/nergy-se/agilerun/pkg/api/v1/tariff"
	"github.com/sirupsen/logrus"
)

// Source is anything that can provide the current rate and consumption pages.
type Source interface {
	FetchRates() ([]tariff.TariffRate, error)
	FetchConsumption() ([]tariff.ConsumptionRecord, error)
}

// UpstreamError is returned when the tariff API could not be reached or
// answered with anything but 200 OK.
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error fetching %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("error fetching %s StatusCode: %d", e.URL, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type Client struct {
	config     *config.Config
	httpClient *http.Client
}

// New returns a Client using rt as transport. A nil rt uses http.DefaultTransport.
func New(c *config.Config, rt http.RoundTripper) *Client {
	return &Client{
		config: c,
		httpClient: &http.Client{
			Timeout:   c.RequestTimeout,
			Transport: rt,
		},
	}
}

func (c *Client) RatesURL() string {
	parts := []string{strings.TrimRight(c.config.BaseURL, "/")}
	if p := strings.Trim(c.config.ProductsPath, "/"); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts,
		url.PathEscape(c.config.ProductCode),
		"electricity-tariffs",
		url.PathEscape(c.config.Tariff),
		"standard-unit-rates",
	)
	return strings.Join(parts, "/")
}

func (c *Client) ConsumptionURL() string {
	q := url.Values{}
	q.Set("group_by", "day")
	q.Set("page_size", "2")
	q.Set("order_by", "-period")
	return fmt.Sprintf("%s/v1/electricity-meter-points/%s/meters/%s/consumption/?%s",
		strings.TrimRight(c.config.BaseURL, "/"),
		url.PathEscape(c.config.MPAN),
		url.PathEscape(c.config.ElecSerialNumber),
		q.Encode(),
	)
}

func (c *Client) FetchRates() ([]tariff.TariffRate, error) {
	page := &tariff.RatesPage{}
	if err := c.get(c.RatesURL(), page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (c *Client) FetchConsumption() ([]tariff.ConsumptionRecord, error) {
	page := &tariff.ConsumptionPage{}
	if err := c.get(c.ConsumptionURL(), page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (c *Client) get(u string, v any) error {
	logrus.Debugf("GET URL %s", u)
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return &UpstreamError{URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	c.authenticate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UpstreamError{URL: u, StatusCode: resp.StatusCode}
	}

	err = json.NewDecoder(resp.Body).Decode(v)
	if err != nil {
		return &UpstreamError{URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("error decoding response: %w", err)}
	}
	return nil
}

func (c *Client) authenticate(req *http.Request) {
	if c.config.Key == "" {
		return
	}
	switch c.config.AuthMode {
	case config.AuthHeader:
		req.Header.Set(c.config.AuthHeader, c.config.Key)
	default:
		req.SetBasicAuth(c.config.Key, "")
	}
}
