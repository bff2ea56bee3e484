package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct{ A int }

type sampleConf struct {
	A int `json:"a"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	if err := reg.Register("s", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{A: c.A}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"a": 3}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.A != 3 {
		t.Fatalf("expected 3 got %d", inst.A)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatal("expected duplicate error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "y"}); err == nil {
		t.Fatal("expected unknown type error")
	}
	assert.Panics(t, func() {
		reg.MustRegister("x", func(map[string]any) (int, error) { return 2, nil })
	})
}

func TestRegistry_Types(t *testing.T) {
	reg := NewRegistry[int]()
	reg.MustRegister("redis", func(map[string]any) (int, error) { return 0, nil })
	reg.MustRegister("mqtt", func(map[string]any) (int, error) { return 0, nil })
	assert.Equal(t, []string{"mqtt", "redis"}, reg.Types())
}

func TestDecodeWeakTypes(t *testing.T) {
	var c struct {
		Port    int           `json:"port"`
		Timeout time.Duration `json:"timeout"`
		Enabled bool          `json:"enabled"`
	}
	err := Decode(map[string]any{"port": "1883", "timeout": "2s", "enabled": "true"}, &c)
	require.NoError(t, err)
	assert.Equal(t, 1883, c.Port)
	assert.Equal(t, 2*time.Second, c.Timeout)
	assert.True(t, c.Enabled)
}
