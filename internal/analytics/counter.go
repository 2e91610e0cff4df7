package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Counter is a frequency histogram that remembers the order in which keys
// were first seen. Ties in Max, Min and MostCommon go to the earliest key.
type Counter[K comparable] struct {
	keys   []K
	counts map[K]int
}

// NewCounter returns an empty Counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Add increments key by one.
func (c *Counter[K]) Add(key K) {
	c.AddN(key, 1)
}

// AddN increments key by n.
func (c *Counter[K]) AddN(key K, n int) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key] += n
}

// Get returns the count for key.
func (c *Counter[K]) Get(key K) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.keys)
}

// Keys returns keys in first-seen order.
func (c *Counter[K]) Keys() []K {
	out := make([]K, len(c.keys))
	copy(out, c.keys)
	return out
}

// Total returns the sum of all counts.
func (c *Counter[K]) Total() int {
	total := 0
	for _, k := range c.keys {
		total += c.counts[k]
	}
	return total
}

// Max returns the key with the highest count.
func (c *Counter[K]) Max() (K, bool) {
	return c.pick(func(a, b int) bool { return a > b })
}

// Min returns the key with the lowest count.
func (c *Counter[K]) Min() (K, bool) {
	return c.pick(func(a, b int) bool { return a < b })
}

func (c *Counter[K]) pick(better func(a, b int) bool) (K, bool) {
	var best K
	if len(c.keys) == 0 {
		return best, false
	}
	best = c.keys[0]
	for _, k := range c.keys[1:] {
		if better(c.counts[k], c.counts[best]) {
			best = k
		}
	}
	return best, true
}

// MostCommon returns a Counter holding the n highest counts, ordered by count
// descending. n <= 0 keeps every key.
func (c *Counter[K]) MostCommon(n int) *Counter[K] {
	keys := c.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	out := NewCounter[K]()
	for _, k := range keys {
		out.AddN(k, c.counts[k])
	}
	return out
}

// MarshalJSON encodes the counter as an object in first-seen key order.
func (c *Counter[K]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(fmt.Sprint(k))
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", c.counts[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
