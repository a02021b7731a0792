package controller

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oantby/homebridge-api/internal/accessory"
	"github.com/oantby/homebridge-api/internal/concurrency"
	"github.com/oantby/homebridge-api/internal/constants"
	"github.com/oantby/homebridge-api/internal/models"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

type hubClient interface {
	Refresh() error
	Accessories() ([]*accessory.Accessory, error)
	Lookup(name string) (*accessory.Accessory, error)
	Generation() string
}

type dbAccess interface {
	ReplaceAll(generation string, accessories []models.AccessorySummary) error
	MarkAccessoryAsUpdated(aid int, attribute string) error
	SetAccessoryUnreachable(aid int, attribute string, outcome models.WriteOutcome) error
	GetUnreachableAccessories() ([]models.AccessoryStatus, error)
}

// Controller drives the hub on behalf of the command line and the shell,
// keeping the reachability ledger in step with write outcomes.
type Controller struct {
	logger   *log.Logger
	hub      hubClient
	dbAccess dbAccess
	throttle time.Duration

	recordedGeneration string
}

func NewController(logger *log.Logger, hub hubClient, dbAccess dbAccess, throttle time.Duration) *Controller {
	return &Controller{
		logger:   logger,
		hub:      hub,
		dbAccess: dbAccess,
		throttle: throttle,
	}
}

// Sync forces a refresh regardless of the cache.
func (c *Controller) Sync() ([]*accessory.Accessory, error) {
	if err := c.hub.Refresh(); err != nil {
		return nil, err
	}
	return c.List()
}

func (c *Controller) List() ([]*accessory.Accessory, error) {
	accessories, err := c.hub.Accessories()
	if err != nil {
		return nil, err
	}
	if err := c.record(accessories); err != nil {
		return nil, err
	}
	return accessories, nil
}

// record stores the accessory list once per refresh generation.
func (c *Controller) record(accessories []*accessory.Accessory) error {
	generation := c.hub.Generation()
	if generation == c.recordedGeneration {
		return nil
	}

	summaries := lo.Map(accessories, func(acc *accessory.Accessory, _ int) models.AccessorySummary {
		return acc.Summary()
	})
	if err := c.dbAccess.ReplaceAll(generation, summaries); err != nil {
		return err
	}

	c.recordedGeneration = generation
	c.logger.Debug("recorded accessories", "generation", generation, "total", len(summaries))
	return nil
}

func (c *Controller) Snapshot() ([]models.AccessorySummary, error) {
	accessories, err := c.List()
	if err != nil {
		return nil, err
	}
	return lo.Map(accessories, func(acc *accessory.Accessory, _ int) models.AccessorySummary {
		return acc.Summary()
	}), nil
}

func (c *Controller) Describe(name string) (string, error) {
	acc, err := c.hub.Lookup(name)
	if err != nil {
		return "", err
	}
	return acc.String(), nil
}

// Set parses raw into a bool/number/string and writes it to the attribute.
func (c *Controller) Set(name string, attribute string, raw string) (models.WriteOutcome, error) {
	acc, err := c.hub.Lookup(name)
	if err != nil {
		return models.WriteNoTarget, err
	}
	outcome := acc.SetAttribute(attribute, ParseValue(raw))
	return outcome, c.recordOutcome(acc, attribute, outcome)
}

func (c *Controller) TurnOn(name string) (models.WriteOutcome, error) {
	return c.setOn(name, true)
}

func (c *Controller) TurnOff(name string) (models.WriteOutcome, error) {
	return c.setOn(name, false)
}

func (c *Controller) setOn(name string, on bool) (models.WriteOutcome, error) {
	acc, err := c.hub.Lookup(name)
	if err != nil {
		return models.WriteNoTarget, err
	}
	outcome := acc.SetOn(on)
	return outcome, c.recordOutcome(acc, constants.AttributeOn, outcome)
}

// TurnAllOff switches off every accessory that can be switched, pacing the
// writes so the hub isn't flooded.
func (c *Controller) TurnAllOff() error {
	accessories, err := c.List()
	if err != nil {
		return err
	}

	switchable := lo.Filter(accessories, func(acc *accessory.Accessory, _ int) bool {
		on, _ := acc.IsOn()
		return on
	})

	tw := concurrency.NewThrottledWorker(c.throttle, func(acc *accessory.Accessory) error {
		outcome := acc.TurnOff()
		if err := c.recordOutcome(acc, constants.AttributeOn, outcome); err != nil {
			return err
		}
		if !outcome.OK() {
			return fmt.Errorf("turning off accessory %d: write %s", acc.Aid(), outcome)
		}
		return nil
	})
	return tw.Run(switchable)
}

func (c *Controller) Unreachable() ([]models.AccessoryStatus, error) {
	return c.dbAccess.GetUnreachableAccessories()
}

func (c *Controller) recordOutcome(acc *accessory.Accessory, attribute string, outcome models.WriteOutcome) error {
	switch outcome {
	case models.WriteSucceeded:
		return c.dbAccess.MarkAccessoryAsUpdated(acc.Aid(), attribute)
	case models.WriteExhausted:
		c.logger.Warn("accessory is unreachable", "aid", acc.Aid(), "attribute", attribute)
		return c.dbAccess.SetAccessoryUnreachable(acc.Aid(), attribute, outcome)
	case models.WriteRejected:
		c.logger.Warn("hub rejected the write", "aid", acc.Aid(), "attribute", attribute)
	default:
		c.logger.Info("accessory has no such attribute", "aid", acc.Aid(), "attribute", attribute)
	}
	return nil
}

// ParseValue interprets command line input as an int, float or bool,
// falling back to the raw string.
func ParseValue(raw string) any {
	if i, err := cast.ToIntE(raw); err == nil {
		return i
	}
	if f, err := cast.ToFloat64E(raw); err == nil {
		return f
	}
	if b, err := cast.ToBoolE(raw); err == nil {
		return b
	}
	return raw
}
