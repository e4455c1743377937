package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := NewResolver(nil)
	tests := []struct {
		spec string
		want color.RGBA
	}{
		{"red", color.RGBA{255, 0, 0, 255}},
		{"Lime", color.RGBA{0, 255, 0, 255}},
		{"  navy ", color.RGBA{0, 0, 128, 255}},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 255}},
		{"#10203040", color.RGBA{0x10, 0x20, 0x30, 0x40}},
		{"cornflowerblue", colornamesCornflower},
		{"rgb(1, 2, 3)", color.RGBA{1, 2, 3, 255}},
		{"#abc", color.RGBA{0xaa, 0xbb, 0xcc, 255}},
		{"transparent", color.RGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := r.Resolve(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

var colornamesCornflower = color.RGBA{100, 149, 237, 255}

func TestResolveErrors(t *testing.T) {
	r := NewResolver(nil)
	for _, spec := range []string{"", "   ", "not-a-color", "#12345z"} {
		_, err := r.Resolve(spec)
		assert.Error(t, err, spec)
	}
}

func TestPaletteOverridesNames(t *testing.T) {
	custom := []Entry{{"Red", color.RGBA{200, 10, 10, 255}}, {"Sand", color.RGBA{194, 178, 128, 255}}}
	r := NewResolver(custom)

	got, err := r.Resolve("red")
	require.NoError(t, err)
	assert.Equal(t, custom[0].Color, got)

	got, err = r.Resolve("sand")
	require.NoError(t, err)
	assert.Equal(t, custom[1].Color, got)

	name, ok := r.NameOf(custom[1].Color)
	assert.True(t, ok)
	assert.Equal(t, "Sand", name)
}

func TestPaletteIsCopied(t *testing.T) {
	r := NewResolver(nil)
	p := r.Palette()
	p[0].Name = "changed"
	_, ok := r.Lookup("Black")
	assert.True(t, ok)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#FF0000", Hex(color.RGBA{255, 0, 0, 255}))
	assert.Equal(t, "#01020304", Hex(color.RGBA{1, 2, 3, 4}))

	c, err := ParseHex(Hex(color.RGBA{9, 8, 7, 6}))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{9, 8, 7, 6}, c)
}
