package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEngine(t *testing.T) {
	tests := []struct {
		browser string
		engine  Engine
		want    Engine
	}{
		{"chromium", EngineAuto, EngineRod},
		{"", EngineAuto, EngineRod},
		{"Chrome", EngineAuto, EngineRod},
		{"edge", EngineAuto, EngineRod},
		{"firefox", EngineAuto, EnginePlaywright},
		{"webkit", EngineAuto, EnginePlaywright},
		{"safari", EngineAuto, EnginePlaywright},
		{"chromium", EngineChromedp, EngineChromedp},
		{"chromium", EnginePlaywright, EnginePlaywright},
		{"firefox", EnginePlaywright, EnginePlaywright},
	}

	for _, tt := range tests {
		t.Run(tt.browser+"/"+string(tt.engine), func(t *testing.T) {
			got, err := ResolveEngine(tt.browser, tt.engine)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveEngineErrors(t *testing.T) {
	_, err := ResolveEngine("netscape", EngineAuto)
	assert.ErrorIs(t, err, ErrUnknownBrowser)

	_, err = ResolveEngine("firefox", EngineRod)
	assert.ErrorIs(t, err, ErrUnsupportedBrowser)

	_, err = ResolveEngine("webkit", EngineChromedp)
	assert.ErrorIs(t, err, ErrUnsupportedBrowser)

	_, err = ResolveEngine("chromium", Engine("selenium"))
	assert.Error(t, err)
}

func TestSplitArg(t *testing.T) {
	name, value := splitArg("--disable-gpu")
	assert.Equal(t, "disable-gpu", name)
	assert.Empty(t, value)

	name, value = splitArg("--window-position=0,0")
	assert.Equal(t, "window-position", name)
	assert.Equal(t, "0,0", value)
}
