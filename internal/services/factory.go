package services

import (
	"fmt"

	"github.com/oantby/homebridge-api/internal/constants"
	"github.com/oantby/homebridge-api/internal/models"
)

var kindsByTypeCode = map[string]Kind{
	constants.TypeLightBulb:     LightBulb,
	constants.TypeMicrophone:    Microphone,
	constants.TypeThermostat:    Thermostat,
	constants.TypeSwitch:        Switch,
	constants.TypeOutlet:        Outlet,
	constants.TypeAccessoryInfo: Info,
}

var requiredAttributes = map[Kind][]string{
	LightBulb:  {constants.AttributeOn},
	Microphone: {"mute"},
	Thermostat: {
		CurrentHeatingCoolingState,
		TargetHeatingCoolingState,
		CurrentTemperature,
		TargetTemperature,
		TemperatureDisplayUnits,
	},
	Switch: {constants.AttributeOn},
	Outlet: {constants.AttributeOn},
}

// Classify maps a hub type code to a service kind. Unknown codes classify
// as Excluded.
func Classify(typeCode string) Kind {
	return kindsByTypeCode[typeCode]
}

// New builds a service of the given kind and binds its characteristics.
// Only the concrete variants can be built; Info and Excluded never produce
// a service.
func New(kind Kind, data models.ServiceData) (*Service, error) {
	required, ok := requiredAttributes[kind]
	if !ok {
		return nil, fmt.Errorf("service kind %q (type %q) cannot be constructed", kind, data.Type)
	}

	svc := newService(kind, data.Type, append([]string(nil), required...))
	if err := svc.bind(data.Characteristics); err != nil {
		return nil, err
	}
	return svc, nil
}

// InfoName pulls the accessory display name out of an information service.
func InfoName(data models.ServiceData) (string, bool) {
	svc := newService(Info, data.Type, nil)
	_ = svc.bind(data.Characteristics)
	return svc.Name()
}
