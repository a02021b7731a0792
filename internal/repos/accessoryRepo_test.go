package repos_test

import (
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/oantby/homebridge-api/internal/models"
	"github.com/oantby/homebridge-api/internal/repos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *repos.AccessoryRepo {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := repos.NewAccessoryRepo(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}), db)
	require.NoError(t, err)
	return repo
}

func Test_AccessoryRepo(t *testing.T) {

	lamp := models.AccessorySummary{Aid: 1, Name: "Lamp", Services: []string{"LightBulb"}}
	boiler := models.AccessorySummary{Aid: 2, Name: "Boiler", Services: []string{"Thermostat", "Switch"}}

	t.Run("replace all records the accessories of a refresh", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.ReplaceAll("gen-1", []models.AccessorySummary{lamp, boiler}))

		status, err := repo.GetAccessoryStatus(2)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, "Boiler", status.Name)
		assert.Equal(t, "gen-1", status.RefreshGeneration)
		assert.False(t, status.Unreachable)
		assert.Nil(t, status.LastUpdateTime)
	})

	t.Run("unknown accessory: nil status", func(t *testing.T) {
		repo := newRepo(t)

		status, err := repo.GetAccessoryStatus(99)
		require.NoError(t, err)
		assert.Nil(t, status)
	})

	t.Run("unreachable accessories are listed until a write succeeds", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.ReplaceAll("gen-1", []models.AccessorySummary{lamp, boiler}))

		require.NoError(t, repo.SetAccessoryUnreachable(1, "on", models.WriteExhausted))
		unreachable, err := repo.GetUnreachableAccessories()
		require.NoError(t, err)
		require.Len(t, unreachable, 1)
		assert.Equal(t, 1, unreachable[0].Aid)
		assert.Equal(t, "on", unreachable[0].LastAttribute)
		assert.Equal(t, "exhausted", unreachable[0].LastWriteOutcome)
		assert.NotNil(t, unreachable[0].LastUpdateTime)

		require.NoError(t, repo.MarkAccessoryAsUpdated(1, "brightness"))
		unreachable, err = repo.GetUnreachableAccessories()
		require.NoError(t, err)
		assert.Empty(t, unreachable)

		status, _ := repo.GetAccessoryStatus(1)
		assert.Equal(t, "succeeded", status.LastWriteOutcome)
		assert.Equal(t, "brightness", status.LastAttribute)
	})

	t.Run("a new refresh drops missing accessories and keeps reachability of the rest", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.ReplaceAll("gen-1", []models.AccessorySummary{lamp, boiler}))
		require.NoError(t, repo.SetAccessoryUnreachable(2, "on", models.WriteRejected))

		renamed := boiler
		renamed.Name = "Heating"
		require.NoError(t, repo.ReplaceAll("gen-2", []models.AccessorySummary{renamed}))

		status, _ := repo.GetAccessoryStatus(1)
		assert.Nil(t, status)

		status, _ = repo.GetAccessoryStatus(2)
		require.NotNil(t, status)
		assert.Equal(t, "Heating", status.Name)
		assert.Equal(t, "gen-2", status.RefreshGeneration)
		assert.True(t, status.Unreachable)
	})
}
