package services

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oantby/homebridge-api/internal/constants"
	"github.com/oantby/homebridge-api/internal/models"
	"github.com/samber/lo"
)

// Kind tags a service variant. The zero value means the service is excluded.
type Kind string

const (
	Excluded   Kind = ""
	Info       Kind = "Info"
	LightBulb  Kind = "LightBulb"
	Microphone Kind = "Microphone"
	Thermostat Kind = "Thermostat"
	Switch     Kind = "Switch"
	Outlet     Kind = "Outlet"
)

type binding struct {
	value any
	iid   int
}

// Service is one functional facet of an accessory with its characteristics
// bound to attribute names. It is the only place attribute values are stored.
type Service struct {
	kind     Kind
	typeCode string
	required []string

	name    string
	hasName bool

	bindings map[string]*binding
	// attribute names in the order they were bound
	order []string
}

// NormalizeName turns a characteristic description into an attribute name,
// e.g. "Current Temperature" -> "currentTemperature".
func NormalizeName(description string) string {
	name := strings.ReplaceAll(description, " ", "")
	if name == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}

func newService(kind Kind, typeCode string, required []string) *Service {
	return &Service{
		kind:     kind,
		typeCode: typeCode,
		required: required,
		bindings: map[string]*binding{},
	}
}

func (s *Service) bind(characteristics []models.CharacteristicData) error {
	for _, c := range characteristics {
		attr := NormalizeName(c.Description)
		if attr == "" {
			continue
		}

		if attr == constants.AttributeName {
			if name, ok := c.Value.(string); ok {
				s.name = name
				s.hasName = true
			}
			continue
		}

		writable := c.HasValue && lo.Contains(c.Perms, constants.PermPairedWrite)
		if !writable && !lo.Contains(s.required, attr) {
			continue
		}

		// a binding needs both halves, a write target and a value
		if !c.HasValue || c.Iid == nil {
			continue
		}

		if _, seen := s.bindings[attr]; !seen {
			s.order = append(s.order, attr)
		}
		s.bindings[attr] = &binding{value: c.Value, iid: *c.Iid}
	}

	missing := lo.Filter(s.required, func(attr string, _ int) bool {
		_, bound := s.bindings[attr]
		return !bound
	})
	if len(missing) > 0 {
		return fmt.Errorf("%s service (type %s) is missing required characteristic(s) %s: %w",
			s.kind, s.typeCode, strings.Join(missing, ", "), models.ErrSchema)
	}

	return nil
}

func (s *Service) Kind() Kind {
	return s.kind
}

func (s *Service) TypeCode() string {
	return s.typeCode
}

func (s *Service) RequiredAttributes() []string {
	return append([]string(nil), s.required...)
}

// Name returns the value of a "Name" characteristic, if the service had one.
func (s *Service) Name() (string, bool) {
	return s.name, s.hasName
}

func (s *Service) Value(attr string) (any, bool) {
	b, ok := s.bindings[attr]
	if !ok {
		return nil, false
	}
	return b.value, true
}

func (s *Service) IID(attr string) (int, bool) {
	b, ok := s.bindings[attr]
	if !ok {
		return 0, false
	}
	return b.iid, true
}

// Attributes lists the bound attribute names in binding order.
func (s *Service) Attributes() []string {
	return append([]string(nil), s.order...)
}

// Update stores a new value for an already bound attribute.
// It reports false (and changes nothing) when the attribute is not bound.
func (s *Service) Update(attr string, value any) bool {
	b, ok := s.bindings[attr]
	if !ok {
		return false
	}
	b.value = value
	return true
}

func (s *Service) String() string {
	switch s.kind {
	case Thermostat:
		return s.thermostatString()
	case Switch, Outlet:
		on, _ := s.Value(constants.AttributeOn)
		return fmt.Sprintf("%sService(On=%v)", s.kind, on)
	}

	parts := lo.Map(s.order, func(attr string, _ int) string {
		return fmt.Sprintf("%s=%v", attr, s.bindings[attr].value)
	})
	return fmt.Sprintf("%sService(%s)", s.kind, strings.Join(parts, ","))
}
