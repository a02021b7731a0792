package homebridge

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// HomebridgeAPIService talks to a hub running in insecure mode.
type HomebridgeAPIService struct {
	logger  *log.Logger
	baseURL string
	auth    string
	client  *http.Client
}

func NewHomebridgeAPIService(logger *log.Logger, baseURL string, auth string, timeout time.Duration) *HomebridgeAPIService {
	return &HomebridgeAPIService{
		logger:  logger,
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		auth:    auth,
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL builds the hub address from a host and port.
func BaseURL(host string, port int) string {
	return fmt.Sprintf("http://%s:%d/", host, port)
}

func (h *HomebridgeAPIService) GET(path string) (int, []byte, error) {
	return h.makeRequest(http.MethodGet, path, nil)
}

func (h *HomebridgeAPIService) PUT(path string, body []byte) (int, error) {
	status, _, err := h.makeRequest(http.MethodPut, path, body)
	return status, err
}

func (h *HomebridgeAPIService) makeRequest(verb string, path string, body []byte) (int, []byte, error) {

	url := h.baseURL + strings.TrimPrefix(path, "/")
	req, err := http.NewRequest(verb, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}

	// set headers
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", h.auth)

	// make the request
	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Error("Error making hub API call", "url", url, "err", err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("error reading response from %s: %w", url, err)
	}

	if resp.StatusCode >= 300 {
		h.logger.Debug("Hub API call returned an error status", "url", url, "status", resp.Status)
	}

	return resp.StatusCode, responseBody, nil
}
