// Package catalog loads restaurant and country metadata from JSON files at
// startup. The data is read-only after Load, so lookups are safe for
// concurrent use by request handlers.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Restaurant describes one tenant of the feedback form.
type Restaurant struct {
	Name    string `json:"name"`
	BgImage string `json:"bg_image"`
	Logo    string `json:"logo"`
}

// Country carries a dialing prefix (Code, e.g. "+34") and a display name.
// The prefix doubles as the country identifier submitted by the form.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Catalog struct {
	restaurants map[string]Restaurant
	countries   map[string]Country
	ordered     []Country
}

// Load reads the restaurants and countries JSON files. The restaurants file is
// an object keyed by restaurant id; the countries file is an ordered array.
func Load(restaurantsPath, countriesPath string) (*Catalog, error) {
	rb, err := os.ReadFile(restaurantsPath)
	if err != nil {
		return nil, fmt.Errorf("read restaurants file: %w", err)
	}

	var restaurants map[string]Restaurant
	if err := json.Unmarshal(rb, &restaurants); err != nil {
		return nil, fmt.Errorf("parse restaurants file: %w", err)
	}

	cb, err := os.ReadFile(countriesPath)
	if err != nil {
		return nil, fmt.Errorf("read countries file: %w", err)
	}

	var ordered []Country
	if err := json.Unmarshal(cb, &ordered); err != nil {
		return nil, fmt.Errorf("parse countries file: %w", err)
	}

	countries := make(map[string]Country, len(ordered))
	for _, c := range ordered {
		if c.Code == "" {
			return nil, fmt.Errorf("country %q has no dialing code", c.Name)
		}
		countries[c.Code] = c
	}

	return &Catalog{
		restaurants: restaurants,
		countries:   countries,
		ordered:     ordered,
	}, nil
}

// Restaurant looks up a tenant by id.
func (c *Catalog) Restaurant(id string) (Restaurant, bool) {
	r, ok := c.restaurants[id]
	return r, ok
}

// HasRestaurant reports whether the tenant id is known.
func (c *Catalog) HasRestaurant(id string) bool {
	_, ok := c.restaurants[id]
	return ok
}

// Country looks up a country by its dialing code.
func (c *Catalog) Country(code string) (Country, bool) {
	cc, ok := c.countries[code]
	return cc, ok
}

// Countries returns countries in file order, for rendering the form select.
func (c *Catalog) Countries() []Country {
	return c.ordered
}
