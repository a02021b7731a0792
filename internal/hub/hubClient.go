package hub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/oantby/homebridge-api/internal/accessory"
	"github.com/oantby/homebridge-api/internal/constants"
	"github.com/oantby/homebridge-api/internal/models"
	"github.com/samber/lo"
)

type hubApi interface {
	GET(path string) (int, []byte, error)
}

type characteristicWriter interface {
	Write(aid int, iid int, value any) models.WriteOutcome
}

// HubClient keeps the hub's accessory list, refreshing it wholesale once it
// is older than the cache TTL.
type HubClient struct {
	logger   *log.Logger
	hubApi   hubApi
	writer   characteristicWriter
	cacheTTL time.Duration
	now      func() time.Time

	mu          sync.Mutex
	lastRefresh time.Time
	generation  string
	accessories []*accessory.Accessory
}

func NewHubClient(logger *log.Logger, hubApi hubApi, writer characteristicWriter, cacheTTL time.Duration) *HubClient {
	return &HubClient{
		logger:   logger,
		hubApi:   hubApi,
		writer:   writer,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// SetClock replaces the time source used for cache expiry.
func (h *HubClient) SetClock(now func() time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now = now
}

func (h *HubClient) Refresh() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refresh()
}

func (h *HubClient) refresh() error {
	status, body, err := h.hubApi.GET(constants.PathAccessories)
	if err != nil {
		return fmt.Errorf("error reading accessories from hub: %v: %w", err, models.ErrTransport)
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected response code %d reading accessories: %w", status, models.ErrTransport)
	}

	if !json.Valid(body) {
		return fmt.Errorf("hub response is not valid JSON: %w", models.ErrParse)
	}

	resp := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("hub response is not an object: %v: %w", err, models.ErrSchema)
	}
	list, ok := resp["accessories"]
	if !ok || string(list) == "null" {
		return fmt.Errorf("no accessories found in hub response: %w", models.ErrSchema)
	}
	entries := []json.RawMessage{}
	if err := json.Unmarshal(list, &entries); err != nil {
		return fmt.Errorf("accessories in hub response is not a list: %v: %w", err, models.ErrSchema)
	}

	h.lastRefresh = h.now()
	h.generation = uuid.New().String()

	accessories := lo.FilterMap(entries, func(raw json.RawMessage, i int) (*accessory.Accessory, bool) {
		data := models.AccessoryData{}
		if err := json.Unmarshal(raw, &data); err != nil {
			h.logger.Warn("dropping accessory", "index", i, "err", err)
			return nil, false
		}

		acc, err := accessory.New(h.logger, data, h.writer, h.generation)
		if err != nil {
			h.logger.Warn("dropping accessory", "index", i, "err", err)
			return nil, false
		}
		return acc, true
	})

	h.accessories = accessories
	h.logger.Debug("refreshed accessories", "total", len(accessories), "generation", h.generation)

	return nil
}

func (h *HubClient) refreshIfStale() error {
	if h.now().After(h.lastRefresh.Add(h.cacheTTL)) {
		return h.refresh()
	}
	return nil
}

// Accessories returns the cached accessories, refreshing them first if the
// cache has expired.
func (h *HubClient) Accessories() ([]*accessory.Accessory, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.refreshIfStale(); err != nil {
		return nil, err
	}
	return append([]*accessory.Accessory(nil), h.accessories...), nil
}

// Lookup finds an accessory by name, ignoring case.
func (h *HubClient) Lookup(name string) (*accessory.Accessory, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.refreshIfStale(); err != nil {
		return nil, err
	}

	acc, found := lo.Find(h.accessories, func(a *accessory.Accessory) bool {
		accName, ok := a.Name()
		return ok && strings.EqualFold(accName, name)
	})
	if !found {
		return nil, fmt.Errorf("accessory %q: %w", name, models.ErrNotFound)
	}
	return acc, nil
}

// Generation identifies the most recent successful refresh.
func (h *HubClient) Generation() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.generation
}

// IsCurrent reports whether acc came from the most recent refresh.
func (h *HubClient) IsCurrent(acc *accessory.Accessory) bool {
	return acc != nil && acc.Generation() == h.Generation()
}
