package services_test

import (
	"testing"

	"github.com/oantby/homebridge-api/internal/models"
	"github.com/oantby/homebridge-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Classify(t *testing.T) {

	tests := []struct {
		typeCode string
		expected services.Kind
	}{
		{typeCode: "43", expected: services.LightBulb},
		{typeCode: "112", expected: services.Microphone},
		{typeCode: "4A", expected: services.Thermostat},
		{typeCode: "49", expected: services.Switch},
		{typeCode: "47", expected: services.Outlet},
		{typeCode: "3E", expected: services.Info},
		{typeCode: "110", expected: services.Excluded},
		{typeCode: "A2", expected: services.Excluded},
		{typeCode: "E863F007-079E-48FF-8F27-9C2605A29F52", expected: services.Excluded},
		{typeCode: "", expected: services.Excluded},
		// type codes are case sensitive
		{typeCode: "4a", expected: services.Excluded},
	}

	for _, test := range tests {
		t.Run(test.typeCode, func(t *testing.T) {
			assert.Equal(t, test.expected, services.Classify(test.typeCode))
		})
	}
}

func Test_New_Variants(t *testing.T) {

	onService := func(typeCode string) models.ServiceData {
		iid := 10
		return models.ServiceData{
			Type: typeCode,
			Characteristics: []models.CharacteristicData{
				{Description: "On", Iid: &iid, Value: true, HasValue: true, Perms: []string{"pr", "pw"}},
			},
		}
	}

	for _, kind := range []services.Kind{services.LightBulb, services.Switch, services.Outlet} {
		t.Run(string(kind), func(t *testing.T) {
			svc, err := services.New(kind, onService("x"))
			require.NoError(t, err)
			assert.Equal(t, kind, svc.Kind())
			assert.Equal(t, []string{"on"}, svc.RequiredAttributes())
		})
	}

	t.Run("Microphone requires mute", func(t *testing.T) {
		_, err := services.New(services.Microphone, onService("112"))
		assert.ErrorIs(t, err, models.ErrSchema)
	})

	t.Run("Info and Excluded are never constructed", func(t *testing.T) {
		for _, kind := range []services.Kind{services.Info, services.Excluded} {
			svc, err := services.New(kind, onService("3E"))
			assert.Nil(t, svc)
			assert.Error(t, err)
		}
	})
}

func Test_InfoName(t *testing.T) {
	iid := 2
	data := models.ServiceData{
		Type: "3E",
		Characteristics: []models.CharacteristicData{
			{Description: "Identify", Iid: &iid, Perms: []string{"pw"}},
			{Description: "Manufacturer", Iid: &iid, Value: "Acme", HasValue: true, Perms: []string{"pr"}},
			{Description: "Name", Iid: &iid, Value: "Desk Lamp", HasValue: true, Perms: []string{"pr"}},
		},
	}

	name, ok := services.InfoName(data)
	assert.True(t, ok)
	assert.Equal(t, "Desk Lamp", name)

	_, ok = services.InfoName(models.ServiceData{Type: "3E"})
	assert.False(t, ok)
}

func Test_HeatingCoolingStateName(t *testing.T) {
	assert.Equal(t, "Off", services.HeatingCoolingStateName(0))
	assert.Equal(t, "Heat", services.HeatingCoolingStateName(1.0))
	assert.Equal(t, "Cool", services.HeatingCoolingStateName(2))
	assert.Equal(t, "Auto", services.HeatingCoolingStateName(3))
	assert.Equal(t, "Fahrenheit", services.TemperatureUnitName(float64(services.Fahrenheit)))
	assert.Equal(t, "Celsius", services.TemperatureUnitName(0))
}
