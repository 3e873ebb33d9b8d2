package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sigpat/sigpat/internal/entities"
	"github.com/sigpat/sigpat/pkg/logger"
)

// DefaultTimeout caps how long an address lookup may take before the caller
// gets a not-found answer instead of a hanging form.
const DefaultTimeout = 10 * time.Second

const defaultBaseURL = "https://viacep.com.br/ws"

// ErrNotFound indicates the postal code does not resolve to an address. A
// timed-out lookup deliberately reports the same thing.
var ErrNotFound = errors.New("lookup: cep not found")

// Address is the subset of the ViaCEP payload the registry forms consume.
type Address struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro,omitempty"`
}

// CEPClient resolves Brazilian postal codes against a ViaCEP-style service.
type CEPClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// CEPOption customises a CEPClient.
type CEPOption func(*CEPClient)

// WithBaseURL points the client at a different service, used by tests.
func WithBaseURL(url string) CEPOption {
	return func(c *CEPClient) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithTimeout overrides the per-lookup deadline.
func WithTimeout(d time.Duration) CEPOption {
	return func(c *CEPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewCEPClient builds a client with the default endpoint and timeout.
func NewCEPClient(opts ...CEPOption) *CEPClient {
	c := &CEPClient{
		baseURL: defaultBaseURL,
		client:  &http.Client{},
		timeout: DefaultTimeout,
		log:     logger.WithModule("lookup"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve fetches the address for an 8-digit CEP. Formatting characters are
// stripped before validation. Timeouts and transport failures resolve to
// ErrNotFound so forms degrade to manual entry instead of blocking.
func (c *CEPClient) Resolve(ctx context.Context, cep string) (*Address, error) {
	digits := entities.Normalize(entities.FieldCPF, cep)
	if len(digits) != 8 {
		return nil, fmt.Errorf("lookup: invalid cep %q", cep)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/json", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("lookup: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("cep lookup failed", zap.String("cep", digits), zap.Error(err))
		return nil, ErrNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNotFound
	}

	var addr Address
	if err := json.NewDecoder(resp.Body).Decode(&addr); err != nil {
		c.log.Warn("cep payload malformed", zap.String("cep", digits), zap.Error(err))
		return nil, ErrNotFound
	}
	if addr.Erro {
		return nil, ErrNotFound
	}

	return &addr, nil
}
