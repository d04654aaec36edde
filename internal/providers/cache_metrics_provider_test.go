package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapCache struct {
	data map[string][]byte
}

func (c *mapCache) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *mapCache) Set(key string, value []byte) {
	c.data[key] = value
}

func TestMetricsCacheProvider_CountsHitsAndMisses(t *testing.T) {
	inner := &mapCache{data: map[string][]byte{"a": []byte("1")}}
	metrics := &countingMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	cache.Get("a")
	cache.Get("b")
	cache.Get("a")
	cache.Get("c")

	assert.Equal(t, 2, metrics.hits)
	assert.Equal(t, 2, metrics.misses)
}

func TestMetricsCacheProvider_SetDelegates(t *testing.T) {
	inner := &mapCache{data: map[string][]byte{}}
	cache := &MetricsCacheProvider{inner: inner, metrics: &countingMetrics{}}

	cache.Set("key2", []byte("val2"))

	val, ok := inner.Get("key2")
	assert.True(t, ok)
	assert.Equal(t, []byte("val2"), val)
}

func TestNewInstrumentedCacheProvider(t *testing.T) {
	metrics := &countingMetrics{}

	disabled := NewInstrumentedCacheProvider(cacheConfig(false, 1, 60), &nopLogger{}, metrics)
	assert.IsType(t, &noopCache{}, disabled)
	disabled.Get("x")
	assert.Equal(t, 0, metrics.misses)

	zero := NewInstrumentedCacheProvider(cacheConfig(true, 0, 60), &nopLogger{}, metrics)
	assert.IsType(t, &noopCache{}, zero)

	enabled := NewInstrumentedCacheProvider(cacheConfig(true, 1, 60), &nopLogger{}, metrics)
	assert.IsType(t, &MetricsCacheProvider{}, enabled)
	enabled.Get("x")
	assert.Equal(t, 1, metrics.misses)
}
