// Package settings merges partial per-channel settings payloads into a
// character document and maintains its derived active-clients list.
package settings

import (
	"github.com/tokenagents/character-registry/internal/model"
)

// Channel is a named external messaging surface a character can be
// enabled on.
type Channel string

const (
	ChannelVoice     Channel = "voice"
	ChannelDiscord   Channel = "discord"
	ChannelTwitter   Channel = "twitter"
	ChannelTelegram  Channel = "telegram"
	ChannelFarcaster Channel = "farcaster"
	ChannelLens      Channel = "lens"
	ChannelWhatsapp  Channel = "whatsapp"
)

// Channels lists every recognized channel in merge order. Keys outside
// this set are ignored by Apply.
var Channels = []Channel{
	ChannelVoice,
	ChannelDiscord,
	ChannelTwitter,
	ChannelTelegram,
	ChannelFarcaster,
	ChannelLens,
	ChannelWhatsapp,
}

// mergeRules maps each channel to its merge behavior. voice is
// configuration-only and never registers into the clients list.
var mergeRules = map[Channel]struct {
	registersClient bool
}{
	ChannelVoice:     {registersClient: false},
	ChannelDiscord:   {registersClient: true},
	ChannelTwitter:   {registersClient: true},
	ChannelTelegram:  {registersClient: true},
	ChannelFarcaster: {registersClient: true},
	ChannelLens:      {registersClient: true},
	ChannelWhatsapp:  {registersClient: true},
}

// Apply overlays the recognized channel keys of patch onto the
// document's "settings" object. Every overwritten channel whose rule
// registers clients is appended to the top-level "clients" array,
// without duplication. Keys absent from patch are left untouched.
// Apply mutates data in place and reports whether anything changed.
func Apply(data model.CharacterData, patch map[string]interface{}) bool {
	if len(patch) == 0 {
		return false
	}

	current, ok := data["settings"].(map[string]interface{})
	if !ok {
		current = make(map[string]interface{})
	}

	changed := false
	for _, ch := range Channels {
		v, present := patch[string(ch)]
		if !present || v == nil {
			continue
		}
		current[string(ch)] = v
		changed = true
		if mergeRules[ch].registersClient {
			registerClient(data, ch)
		}
	}
	if changed {
		data["settings"] = current
	}
	return changed
}

// registerClient ensures the channel name appears exactly once in the
// document's clients array. A missing or malformed array is rebuilt.
func registerClient(data model.CharacterData, ch Channel) {
	clients, ok := data["clients"].([]interface{})
	if !ok {
		clients = []interface{}{}
	}
	for _, c := range clients {
		if s, ok := c.(string); ok && s == string(ch) {
			return
		}
	}
	data["clients"] = append(clients, string(ch))
}
