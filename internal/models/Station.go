package models

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

var stationIDPattern = regexp.MustCompile(`^P[0-9]+$`)

type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func DefaultStations() []Station {
	return []Station{
		{ID: "P3", Name: "Borracha"},
		{ID: "P4", Name: "Vedante Conector"},
		{ID: "P5", Name: "Continuidade"},
		{ID: "P6", Name: "Reposicionamento Peça"},
		{ID: "P7", Name: "Aparafusadora"},
		{ID: "P8", Name: "Teste do Vácuo"},
		{ID: "P9", Name: "Impressora 1"},
		{ID: "P10", Name: "Impressora 2"},
		{ID: "P11", Name: "Câmara Etiqueta"},
	}
}

// Catalog is the closed, immutable set of stations known to the process.
type Catalog struct {
	stations []Station
	index    map[string]Station
}

func NewCatalog(stations []Station) (*Catalog, error) {
	if len(stations) == 0 {
		return nil, fmt.Errorf("station catalog is empty")
	}
	c := &Catalog{
		stations: make([]Station, 0, len(stations)),
		index:    make(map[string]Station, len(stations)),
	}
	for _, s := range stations {
		if !stationIDPattern.MatchString(s.ID) {
			return nil, fmt.Errorf("invalid station id %q", s.ID)
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate station id %q", s.ID)
		}
		c.index[s.ID] = s
		c.stations = append(c.stations, s)
	}
	sort.SliceStable(c.stations, func(i, j int) bool {
		return StationNumber(c.stations[i].ID) < StationNumber(c.stations[j].ID)
	})
	return c, nil
}

func (c *Catalog) Lookup(id string) (Station, bool) {
	s, ok := c.index[id]
	return s, ok
}

func (c *Catalog) Name(id string) string {
	return c.index[id].Name
}

// All returns the stations ordered by numeric suffix.
func (c *Catalog) All() []Station {
	out := make([]Station, len(c.stations))
	copy(out, c.stations)
	return out
}

func (c *Catalog) Len() int {
	return len(c.stations)
}

// StationNumber parses the numeric suffix of "P<n>"; ids that don't parse sort last.
func StationNumber(id string) int {
	if len(id) < 2 {
		return int(^uint(0) >> 1)
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
