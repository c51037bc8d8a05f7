package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	restaurantsJSON = `{
		"trattoria-roma": {"name": "Trattoria Roma", "bg_image": "roma.jpg", "logo": "roma-logo.png"},
		"casa-pepe":      {"name": "Casa Pepe", "bg_image": "pepe.jpg", "logo": "pepe-logo.png"}
	}`
	countriesJSON = `[
		{"code": "+34", "name": "Spain"},
		{"code": "+39", "name": "Italy"},
		{"code": "+351", "name": "Portugal"}
	]`
)

func writeCatalogFiles(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	rp := filepath.Join(dir, "restaurants.json")
	cp := filepath.Join(dir, "countries.json")

	require.NoError(t, os.WriteFile(rp, []byte(restaurantsJSON), 0o644))
	require.NoError(t, os.WriteFile(cp, []byte(countriesJSON), 0o644))

	return rp, cp
}

func TestLoadAndLookups(t *testing.T) {
	rp, cp := writeCatalogFiles(t)

	cat, err := Load(rp, cp)
	require.NoError(t, err)

	r, ok := cat.Restaurant("trattoria-roma")
	require.True(t, ok)
	require.Equal(t, "Trattoria Roma", r.Name)
	require.Equal(t, "roma.jpg", r.BgImage)

	require.True(t, cat.HasRestaurant("casa-pepe"))
	require.False(t, cat.HasRestaurant("nope"))

	c, ok := cat.Country("+39")
	require.True(t, ok)
	require.Equal(t, "Italy", c.Name)

	_, ok = cat.Country("+1")
	require.False(t, ok)
}

func TestCountriesKeepFileOrder(t *testing.T) {
	rp, cp := writeCatalogFiles(t)

	cat, err := Load(rp, cp)
	require.NoError(t, err)

	got := cat.Countries()
	require.Len(t, got, 3)
	require.Equal(t, "+34", got[0].Code)
	require.Equal(t, "+39", got[1].Code)
	require.Equal(t, "+351", got[2].Code)
}

func TestLoadErrors(t *testing.T) {
	rp, cp := writeCatalogFiles(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), cp)
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "countries.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"name": "No Code"}]`), 0o644))

	_, err = Load(rp, bad)
	require.Error(t, err)
}
