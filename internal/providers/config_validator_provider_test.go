package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picktime/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{Host: "0.0.0.0", Port: 8080},
		Persistence: structures.Persistence{
			Driver:   "file",
			FilePath: "/tmp/picktime.db",
			Compress: true,
		},
		Logger: structures.LoggerConfig{Level: "info", Mode: 0644, Dir: "/tmp/logs"},
		Shift: structures.ShiftConfig{
			Timezone:        "Local",
			MonitorInterval: time.Minute,
			DisplayInterval: time.Second,
			CutoverBucket:   "cutover",
		},
		Report: structures.ReportConfig{Order: "desc"},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	assert.NoError(t, NewCnfValidator(validConfig()).Validate())
}

func TestConfigValidator_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *structures.Config)
	}{
		{"empty host", func(c *structures.Config) { c.WebServer.Host = "" }},
		{"zero port", func(c *structures.Config) { c.WebServer.Port = 0 }},
		{"unknown driver", func(c *structures.Config) { c.Persistence.Driver = "redis" }},
		{"empty file path", func(c *structures.Config) { c.Persistence.FilePath = "" }},
		{"bad log level", func(c *structures.Config) { c.Logger.Level = "verbose" }},
		{"zero monitor interval", func(c *structures.Config) { c.Shift.MonitorInterval = 0 }},
		{"bad cutover bucket", func(c *structures.Config) { c.Shift.CutoverBucket = "closing" }},
		{"bad order", func(c *structures.Config) { c.Report.Order = "random" }},
		{"bad station id", func(c *structures.Config) {
			c.Stations = []structures.StationConfig{{ID: "X1", Name: "Bad"}}
		}},
		{"duplicate station", func(c *structures.Config) {
			c.Stations = []structures.StationConfig{{ID: "P3"}, {ID: "P3"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, NewCnfValidator(c).Validate())
		})
	}
}

func TestNewCatalogProvider(t *testing.T) {
	c, err := NewCatalogProvider(validConfig())
	require.NoError(t, err)
	assert.Equal(t, 9, c.Len())

	conf := validConfig()
	conf.Stations = []structures.StationConfig{{ID: "P12", Name: "Embalagem"}, {ID: "P2", Name: "Corte"}}
	c, err = NewCatalogProvider(conf)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "P2", c.All()[0].ID)
	assert.Equal(t, "Embalagem", c.Name("P12"))
}

func TestNewShiftPolicyProvider(t *testing.T) {
	conf := validConfig()
	conf.Shift.Timezone = "UTC"
	p, err := NewShiftPolicyProvider(conf)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, p.Now().Location())

	conf.Shift.Timezone = "Mars/Olympus_Mons"
	_, err = NewShiftPolicyProvider(conf)
	assert.Error(t, err)
}
