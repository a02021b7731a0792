package discovery

import (
	"context"
	"fmt"
	"net"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/enbility/zeroconf/v3"
	"github.com/oantby/homebridge-api/internal/constants"
	"github.com/samber/lo"
)

// a hub found on the local network
type Hub struct {
	Name string
	Host string
	Port int
	// addresses the hub answered from, IPv4 first
	Addresses []string
	Text      []string
}

// Address picks the best address to reach the hub at.
func (h Hub) Address() string {
	if len(h.Addresses) > 0 {
		return h.Addresses[0]
	}
	return h.Host
}

// browse is zeroconf.Browse, swapped out in tests
type browseFunc func(ctx context.Context, service, domain string, entries, removed chan<- *zeroconf.ServiceEntry) error

type Browser struct {
	logger *log.Logger
	browse browseFunc
}

func NewBrowser(logger *log.Logger) *Browser {
	return &Browser{
		logger: logger,
		browse: func(ctx context.Context, service, domain string, entries, removed chan<- *zeroconf.ServiceEntry) error {
			return zeroconf.Browse(ctx, service, domain, entries, removed)
		},
	}
}

// Discover browses for HAP bridges until the timeout expires and returns
// everything found, sorted by name.
func (b *Browser) Discover(ctx context.Context, timeout time.Duration) ([]Hub, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	browseErr := make(chan error, 1)
	go func(entries, removed chan *zeroconf.ServiceEntry) {
		browseErr <- b.browse(ctx, constants.DiscoveryService, constants.DiscoveryDomain, entries, removed)
	}(entries, removed)

	found := map[string]Hub{}

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				entries = nil
				continue
			}
			if entry == nil {
				continue
			}
			hub := entryToHub(entry)
			if existing, ok := found[hub.Name]; ok {
				hub.Addresses = lo.Uniq(append(existing.Addresses, hub.Addresses...))
			}
			found[hub.Name] = hub
			b.logger.Debug("found hub", "name", hub.Name, "host", hub.Host, "port", hub.Port)

		case entry, ok := <-removed:
			if !ok {
				removed = nil
				continue
			}
			if entry != nil {
				delete(found, entry.Instance)
			}

		case err := <-browseErr:
			if err != nil {
				return nil, fmt.Errorf("error browsing for %s: %w", constants.DiscoveryService, err)
			}
			// browsing finished on its own, wait for the timeout
			browseErr = nil

		case <-ctx.Done():
			hubs := lo.Values(found)
			sort.Slice(hubs, func(i, j int) bool { return hubs[i].Name < hubs[j].Name })
			return hubs, nil
		}
	}
}

func entryToHub(entry *zeroconf.ServiceEntry) Hub {
	addresses := lo.Map(entry.AddrIPv4, func(ip net.IP, _ int) string { return ip.String() })
	addresses = append(addresses, lo.Map(entry.AddrIPv6, func(ip net.IP, _ int) string { return ip.String() })...)

	return Hub{
		Name:      entry.Instance,
		Host:      entry.HostName,
		Port:      entry.Port,
		Addresses: addresses,
		Text:      entry.Text,
	}
}
