package services

import (
	"fmt"

	"github.com/spf13/cast"
)

const (
	CurrentHeatingCoolingState = "currentHeatingCoolingState"
	TargetHeatingCoolingState  = "targetHeatingCoolingState"
	CurrentTemperature         = "currentTemperature"
	TargetTemperature          = "targetTemperature"
	TemperatureDisplayUnits    = "temperatureDisplayUnits"
)

// heating/cooling states
const (
	HeatingCoolingOff  = 0
	HeatingCoolingHeat = 1
	HeatingCoolingCool = 2
	HeatingCoolingAuto = 3
)

// temperature display units
const (
	Celsius    = 0
	Fahrenheit = 1
)

func HeatingCoolingStateName(state any) string {
	switch cast.ToInt(state) {
	case HeatingCoolingOff:
		return "Off"
	case HeatingCoolingHeat:
		return "Heat"
	case HeatingCoolingCool:
		return "Cool"
	default:
		return "Auto"
	}
}

func TemperatureUnitName(units any) string {
	if cast.ToInt(units) == Fahrenheit {
		return "Fahrenheit"
	}
	return "Celsius"
}

func (s *Service) thermostatString() string {
	state, _ := s.Value(TargetHeatingCoolingState)
	target, _ := s.Value(TargetTemperature)
	current, _ := s.Value(CurrentTemperature)

	return fmt.Sprintf("ThermostatService(%s,Target=%.02f,Present=%.02f)",
		HeatingCoolingStateName(state), cast.ToFloat64(target), cast.ToFloat64(current))
}
