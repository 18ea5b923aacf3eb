// Package holiday loads the fixed holiday calendar from YAML.
package holiday

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/calendar"
	"gopkg.in/yaml.v3"
)

//go:embed holidays.yaml
var defaultCalendar []byte

type entry struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

type file struct {
	Holidays []entry `yaml:"holidays"`
}

// Calendar is an immutable holiday list indexed by year.
type Calendar struct {
	byYear map[int][]calendar.Holiday
}

// Default returns the embedded calendar.
func Default() (*Calendar, error) {
	return Parse(defaultCalendar)
}

// Load reads a calendar file. An empty path returns the embedded calendar.
func Load(path string) (*Calendar, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holiday calendar %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Calendar, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", calendar.ErrHolidayCalendar, err)
	}

	c := &Calendar{byYear: make(map[int][]calendar.Holiday)}
	seen := make(map[string]bool, len(f.Holidays))
	for i, e := range f.Holidays {
		date, err := time.Parse(time.DateOnly, e.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d has date %q", calendar.ErrHolidayCalendar, i, e.Date)
		}
		if seen[e.Date] {
			continue
		}
		seen[e.Date] = true
		c.byYear[date.Year()] = append(c.byYear[date.Year()], calendar.Holiday{Date: date, Name: e.Name})
	}

	for year := range c.byYear {
		list := c.byYear[year]
		sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	}
	return c, nil
}

// Holidays returns a copy of the year's holidays in date order.
func (c *Calendar) Holidays(year int) []calendar.Holiday {
	list := c.byYear[year]
	out := make([]calendar.Holiday, len(list))
	copy(out, list)
	return out
}
