package accessory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/oantby/homebridge-api/internal/constants"
	"github.com/oantby/homebridge-api/internal/models"
	"github.com/oantby/homebridge-api/internal/services"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

type characteristicWriter interface {
	Write(aid int, iid int, value any) models.WriteOutcome
}

// where writes for an attribute are routed
type target struct {
	service *services.Service
	iid     int
}

// Accessory is a device on the hub. Attribute values live on its services;
// the accessory only keeps a registry of which service/iid owns each name.
type Accessory struct {
	logger *log.Logger
	writer characteristicWriter

	aid        int
	name       string
	hasName    bool
	generation string

	services []*services.Service
	registry map[string][]target
	// attribute names in registration order
	attributes []string
}

// New builds an accessory from its JSON description. Services that are
// excluded or malformed are left out; a missing aid fails the accessory.
func New(logger *log.Logger, data models.AccessoryData, writer characteristicWriter, generation string) (*Accessory, error) {
	if data.Aid == nil {
		return nil, fmt.Errorf("accessory has no aid: %w", models.ErrSchema)
	}

	a := &Accessory{
		logger:     logger,
		writer:     writer,
		aid:        *data.Aid,
		generation: generation,
		registry:   map[string][]target{},
	}

	for i, raw := range data.Services {
		sd := models.ServiceData{}
		if err := json.Unmarshal(raw, &sd); err != nil {
			logger.Warn("dropping malformed service", "aid", a.aid, "index", i, "err", err)
			continue
		}

		switch kind := services.Classify(sd.Type); kind {

		case services.Info:
			if name, ok := services.InfoName(sd); ok {
				a.setName(name)
			}

		case services.Excluded:
			logger.Debug("skipping unsupported service", "aid", a.aid, "type", sd.Type)

		default:
			svc, err := services.New(kind, sd)
			if err != nil {
				// a Name on the broken service still names the accessory
				if name, ok := services.InfoName(sd); ok {
					a.setName(name)
				}
				logger.Warn("dropping service", "aid", a.aid, "type", sd.Type, "err", err)
				continue
			}
			a.addService(svc)
		}
	}

	return a, nil
}

func (a *Accessory) setName(name string) {
	a.name = name
	a.hasName = true
}

func (a *Accessory) addService(svc *services.Service) {
	if name, ok := svc.Name(); ok {
		a.setName(name)
	}

	a.services = append(a.services, svc)
	for _, attr := range svc.Attributes() {
		iid, _ := svc.IID(attr)
		if _, seen := a.registry[attr]; !seen {
			a.attributes = append(a.attributes, attr)
		}
		a.registry[attr] = append(a.registry[attr], target{service: svc, iid: iid})
	}
}

func (a *Accessory) Aid() int {
	return a.aid
}

// Name is absent unless the accessory had an information service or a
// "Name" characteristic.
func (a *Accessory) Name() (string, bool) {
	return a.name, a.hasName
}

// Generation identifies the refresh that built this accessory.
func (a *Accessory) Generation() string {
	return a.generation
}

func (a *Accessory) Services() []*services.Service {
	return append([]*services.Service(nil), a.services...)
}

func (a *Accessory) Attributes() []string {
	return append([]string(nil), a.attributes...)
}

// Attribute reads the current value of an attribute. When several services
// expose the same name the last bound one wins.
func (a *Accessory) Attribute(attr string) (any, bool) {
	targets := a.registry[attr]
	if len(targets) == 0 {
		return nil, false
	}
	return targets[len(targets)-1].service.Value(attr)
}

// SetAttribute writes value to every service exposing attr. A service's
// stored value only changes once its own write succeeded.
func (a *Accessory) SetAttribute(attr string, value any) models.WriteOutcome {
	if attr == constants.AttributeOn {
		return a.SetOn(truthy(value))
	}
	return a.write(attr, value)
}

// IsOn reports the on state, and false for ok when nothing exposes one.
func (a *Accessory) IsOn() (on bool, ok bool) {
	value, ok := a.Attribute(constants.AttributeOn)
	return ok && truthy(value), ok
}

func (a *Accessory) SetOn(on bool) models.WriteOutcome {
	return a.write(constants.AttributeOn, on)
}

// TurnOn writes value (true, or 1 for hubs that want a number) to every
// "on" characteristic.
func (a *Accessory) TurnOn(value any) models.WriteOutcome {
	return a.write(constants.AttributeOn, value)
}

func (a *Accessory) TurnOff() models.WriteOutcome {
	return a.SetOn(false)
}

func (a *Accessory) write(attr string, value any) models.WriteOutcome {
	targets := a.registry[attr]
	if len(targets) == 0 {
		a.logger.Debug("no service exposes attribute", "aid", a.aid, "attribute", attr)
		return models.WriteNoTarget
	}

	outcome := models.WriteNoTarget
	for _, t := range targets {
		result := a.writer.Write(a.aid, t.iid, value)
		if result.OK() {
			t.service.Update(attr, value)
		}
		outcome = outcome.Worse(result)
	}
	return outcome
}

// Summary flattens the accessory for storage and dumps.
func (a *Accessory) Summary() models.AccessorySummary {
	attributes := map[string]any{}
	for _, attr := range a.attributes {
		attributes[attr], _ = a.Attribute(attr)
	}

	return models.AccessorySummary{
		Aid:  a.aid,
		Name: a.name,
		Services: lo.Map(a.services, func(svc *services.Service, _ int) string {
			return string(svc.Kind())
		}),
		Attributes: attributes,
	}
}

func (a *Accessory) String() string {
	parts := []string{}

	if a.hasName {
		parts = append(parts, "name="+a.name)
	} else {
		parts = append(parts, "Unnamed")
	}

	if on, ok := a.IsOn(); ok {
		parts = append(parts, lo.Ternary(on, "On", "Off"))
	}
	if brightness, ok := a.Attribute(constants.AttributeBrightness); ok {
		parts = append(parts, fmt.Sprintf("brightness=%v", brightness))
	}

	for _, svc := range a.services {
		for _, attr := range svc.RequiredAttributes() {
			if attr == constants.AttributeOn || attr == constants.AttributeBrightness {
				continue
			}
			value, _ := svc.Value(attr)
			parts = append(parts, fmt.Sprintf("%s=%v", attr, value))
		}
	}

	return "Accessory(" + strings.Join(parts, ",") + ")"
}

func truthy(value any) bool {
	if b, err := cast.ToBoolE(value); err == nil {
		return b
	}
	return cast.ToFloat64(value) != 0
}
