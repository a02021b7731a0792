package services_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/oantby/homebridge-api/internal/models"
	"github.com/oantby/homebridge-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceData(t *testing.T, raw string) models.ServiceData {
	t.Helper()
	data := models.ServiceData{}
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

const thermostatJSON = `{
  "type": "4A",
  "characteristics": [
    {"description": "Name", "iid": 9, "value": "Hallway", "perms": ["pr"]},
    {"description": "Current Heating Cooling State", "iid": 10, "value": 1, "perms": ["pr", "ev"]},
    {"description": "Target Heating Cooling State", "iid": 11, "value": 1, "perms": ["pr", "pw", "ev"]},
    {"description": "Current Temperature", "iid": 12, "value": 19.5, "perms": ["pr", "ev"]},
    {"description": "Target Temperature", "iid": 13, "value": 21, "perms": ["pr", "pw", "ev"]},
    {"description": "Temperature Display Units", "iid": 14, "value": 0, "perms": ["pr", "pw", "ev"]},
    {"description": "Current Relative Humidity", "iid": 15, "value": 40, "perms": ["pr", "ev"]}
  ]
}`

func Test_NormalizeName(t *testing.T) {

	tests := []struct {
		description string
		expected    string
	}{
		{description: "Current Temperature", expected: "currentTemperature"},
		{description: "On", expected: "on"},
		{description: "Name", expected: "name"},
		{description: "Target Heating Cooling State", expected: "targetHeatingCoolingState"},
		{description: "brightness", expected: "brightness"},
		{description: "  ", expected: ""},
		{description: "", expected: ""},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			assert.Equal(t, test.expected, services.NormalizeName(test.description))
			// deterministic
			assert.Equal(t, services.NormalizeName(test.description), services.NormalizeName(test.description))
		})
	}
}

func Test_New_Thermostat(t *testing.T) {

	t.Run("binds required attributes, writable attributes and the name", func(t *testing.T) {
		svc, err := services.New(services.Thermostat, serviceData(t, thermostatJSON))
		require.NoError(t, err)

		assert.Equal(t, services.Thermostat, svc.Kind())
		assert.Equal(t, "4A", svc.TypeCode())

		name, ok := svc.Name()
		assert.True(t, ok)
		assert.Equal(t, "Hallway", name)

		iid, ok := svc.IID(services.TargetTemperature)
		assert.True(t, ok)
		assert.Equal(t, 13, iid)

		value, ok := svc.Value(services.CurrentTemperature)
		assert.True(t, ok)
		assert.Equal(t, 19.5, value)

		// read only and not required: not bound
		_, ok = svc.Value("currentRelativeHumidity")
		assert.False(t, ok)
		// the name is never bound as an attribute
		_, ok = svc.Value("name")
		assert.False(t, ok)

		assert.Equal(t, "ThermostatService(Heat,Target=21.00,Present=19.50)", svc.String())
	})

	t.Run("missing target temperature: schema error", func(t *testing.T) {
		data := serviceData(t, thermostatJSON)
		data.Characteristics = append(data.Characteristics[:4], data.Characteristics[5:]...)

		svc, err := services.New(services.Thermostat, data)
		assert.Nil(t, svc)
		assert.True(t, errors.Is(err, models.ErrSchema))
		assert.Contains(t, err.Error(), services.TargetTemperature)
	})

	t.Run("required attribute without an iid: schema error", func(t *testing.T) {
		data := serviceData(t, thermostatJSON)
		data.Characteristics[4].Iid = nil

		_, err := services.New(services.Thermostat, data)
		assert.ErrorIs(t, err, models.ErrSchema)
	})
}

func Test_New_Binding(t *testing.T) {

	t.Run("writable characteristic without a value is not bound", func(t *testing.T) {
		svc, err := services.New(services.LightBulb, serviceData(t, `{
      "type": "43",
      "characteristics": [
        {"description": "On", "iid": 10, "value": false, "perms": ["pr", "pw"]},
        {"description": "Identify", "iid": 11, "perms": ["pw"]},
        {"description": "Brightness", "iid": 12, "value": 70, "perms": ["pr", "pw"]}
      ]
    }`))
		require.NoError(t, err)

		assert.Equal(t, []string{"on", "brightness"}, svc.Attributes())
		_, ok := svc.IID("identify")
		assert.False(t, ok)
	})

	t.Run("a null value still counts as present", func(t *testing.T) {
		svc, err := services.New(services.Switch, serviceData(t, `{
      "type": "49",
      "characteristics": [{"description": "On", "iid": 10, "value": null, "perms": ["pr"]}]
    }`))
		require.NoError(t, err)

		value, ok := svc.Value("on")
		assert.True(t, ok)
		assert.Nil(t, value)
	})

	t.Run("required characteristic missing its value: schema error", func(t *testing.T) {
		_, err := services.New(services.Microphone, serviceData(t, `{
      "type": "112",
      "characteristics": [{"description": "Mute", "iid": 10, "perms": ["pr", "pw"]}]
    }`))
		assert.ErrorIs(t, err, models.ErrSchema)
	})
}

func Test_Update(t *testing.T) {
	svc, err := services.New(services.Outlet, serviceData(t, `{
    "type": "47",
    "characteristics": [{"description": "On", "iid": 10, "value": false, "perms": ["pr", "pw"]}]
  }`))
	require.NoError(t, err)

	assert.True(t, svc.Update("on", true))
	value, _ := svc.Value("on")
	assert.Equal(t, true, value)
	assert.Equal(t, "OutletService(On=true)", svc.String())

	assert.False(t, svc.Update("brightness", 50))
	_, ok := svc.Value("brightness")
	assert.False(t, ok)
}
