package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverytrack/internal/apperr"
	"deliverytrack/internal/model"
)

func TestFileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "couriers.json")

	s := NewFile[model.Courier]("courier", path)
	created, err := s.Create(courier("alice"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(created.ID))

	// A new instance over the same file sees the same id counter: deleted
	// ids are not reused across restarts either.
	reopened := NewFile[model.Courier]("courier", path)
	next, err := reopened.Create(courier("bob"))
	require.NoError(t, err)
	assert.Equal(t, created.ID+1, next.ID)
}

func TestFileKeepsDataAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")

	s := NewFile[model.Order]("order", path)
	created, err := s.Create(model.Order{
		Type:          model.OrderExpress,
		Address:       "1 Main St",
		Lat:           32.08,
		Lon:           34.78,
		CustomerName:  "Dana",
		CustomerPhone: "+972501112233",
		PlacedAt:      time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	got, err := NewFile[model.Order]("order", path).Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestFileCorruptContentIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "couriers.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewFile[model.Courier]("courier", path)
	_, err := s.Get(1000)
	assert.ErrorIs(t, err, apperr.ErrCorrupted)
}

func TestFileConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	initial := model.DefaultConfig(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))

	cs, err := NewFileConfig(path, initial)
	require.NoError(t, err)

	got, err := cs.Get()
	require.NoError(t, err)
	assert.Equal(t, initial, got)

	got.MaxDeliveryTime = 3 * time.Hour
	got.CompanyAddress = "HQ, Tel Aviv"
	require.NoError(t, cs.Put(got))

	// Seeding does not clobber an existing file.
	reopened, err := NewFileConfig(path, initial)
	require.NoError(t, err)
	again, err := reopened.Get()
	require.NoError(t, err)
	assert.Equal(t, got, again)
}
