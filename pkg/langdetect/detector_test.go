package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectorCheck(t *testing.T) {
	d, err := New([]string{"en"}, 0.0)
	require.NoError(t, err)

	lang, ok := d.Check("This blender is great and I would absolutely buy it again for my family.")
	assert.True(t, ok)
	assert.Equal(t, "en", lang)

	lang, ok = d.Check("Dieses Produkt ist wirklich schlecht und ich bin sehr enttäuscht von der Qualität.")
	assert.False(t, ok)
	assert.Equal(t, "de", lang)
}

func TestDetectorUnknownIsSupported(t *testing.T) {
	d, err := New([]string{"en"}, 0.25)
	require.NoError(t, err)

	lang, ok := d.Check("12345 !!!")
	assert.True(t, ok)
	assert.Empty(t, lang)
}

func TestNewRejectsUnknownCode(t *testing.T) {
	_, err := New([]string{"xx"}, 0.25)
	assert.Error(t, err)

	_, err = New([]string{" EN ", "de"}, 0.25)
	assert.NoError(t, err)
}
