package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenagents/character-registry/internal/model"
)

func doc() model.CharacterData {
	return model.CharacterData{
		"name":    "Ada",
		"clients": []interface{}{},
		"settings": map[string]interface{}{
			"voice": map[string]interface{}{"model": "en_US-female"},
		},
	}
}

func TestApplyRegistersNonVoiceChannels(t *testing.T) {
	d := doc()
	changed := Apply(d, map[string]interface{}{
		"discord": map[string]interface{}{"token": "x"},
	})
	require.True(t, changed)

	s := d["settings"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"token": "x"}, s["discord"])
	assert.Equal(t, []interface{}{"discord"}, d["clients"])
}

func TestApplyIsIdempotentOnClients(t *testing.T) {
	d := doc()
	Apply(d, map[string]interface{}{"telegram": map[string]interface{}{"token": "a"}})
	Apply(d, map[string]interface{}{"telegram": map[string]interface{}{"token": "b"}})

	assert.Equal(t, []interface{}{"telegram"}, d["clients"])
	s := d["settings"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"token": "b"}, s["telegram"])
}

func TestApplyVoiceNeverTouchesClients(t *testing.T) {
	d := doc()
	changed := Apply(d, map[string]interface{}{
		"voice": map[string]interface{}{"model": "en_GB-male"},
	})
	require.True(t, changed)

	assert.Equal(t, []interface{}{}, d["clients"])
	s := d["settings"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"model": "en_GB-male"}, s["voice"])
}

func TestApplyLeavesUnlistedKeysUntouched(t *testing.T) {
	d := doc()
	Apply(d, map[string]interface{}{"lens": map[string]interface{}{"profile": "p"}})

	s := d["settings"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"model": "en_US-female"}, s["voice"])
}

func TestApplyIgnoresUnknownAndNullKeys(t *testing.T) {
	d := doc()
	changed := Apply(d, map[string]interface{}{
		"slack":   map[string]interface{}{"token": "x"},
		"twitter": nil,
	})
	assert.False(t, changed)
	assert.Equal(t, []interface{}{}, d["clients"])
}

func TestApplyRebuildsMalformedClients(t *testing.T) {
	d := model.CharacterData{"settings": map[string]interface{}{}, "clients": "oops"}
	Apply(d, map[string]interface{}{"whatsapp": map[string]interface{}{"number": "1"}})
	assert.Equal(t, []interface{}{"whatsapp"}, d["clients"])
}

func TestApplyMultipleChannelsOnePass(t *testing.T) {
	d := doc()
	Apply(d, map[string]interface{}{
		"discord":   map[string]interface{}{"token": "d"},
		"farcaster": map[string]interface{}{"fid": float64(7)},
		"voice":     map[string]interface{}{"model": "m"},
	})
	assert.ElementsMatch(t, []interface{}{"discord", "farcaster"}, d["clients"].([]interface{}))
}
