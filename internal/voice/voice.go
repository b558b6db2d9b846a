// Package voice parses free-text voice commands into intents.
package voice

import (
	"strings"

	"astra/internal/action"
	"astra/internal/keys"
)

// Intent is the parsed meaning of a voice command. The set of implementations is closed.
type Intent interface {
	isIntent()
}

type (
	// OpenApp opens Name with the platform default handler.
	OpenApp struct{ Name string }
	// TypeText types Text literally.
	TypeText struct{ Text string }
	// Unknown holds normalized text that matched no rule.
	Unknown struct{ Text string }

	MediaToggle   struct{}
	MediaNext     struct{}
	MediaPrevious struct{}
	VolumeUp      struct{}
	VolumeDown    struct{}
	VolumeMute    struct{}
)

func (OpenApp) isIntent()       {}
func (TypeText) isIntent()      {}
func (Unknown) isIntent()       {}
func (MediaToggle) isIntent()   {}
func (MediaNext) isIntent()     {}
func (MediaPrevious) isIntent() {}
func (VolumeUp) isIntent()      {}
func (VolumeDown) isIntent()    {}
func (VolumeMute) isIntent()    {}

// rule matches normalized text. Prefix rules hand the trimmed remainder to build.
type rule struct {
	prefix string
	exact  []string
	build  func(rest string) Intent
}

// rules are evaluated top to bottom; the first match wins.
var rules = []rule{
	{prefix: "open ", build: func(rest string) Intent { return OpenApp{Name: rest} }},
	{prefix: "type ", build: func(rest string) Intent { return TypeText{Text: rest} }},
	{exact: []string{"play", "pause"}, build: func(string) Intent { return MediaToggle{} }},
	{exact: []string{"next"}, build: func(string) Intent { return MediaNext{} }},
	{exact: []string{"previous", "prev"}, build: func(string) Intent { return MediaPrevious{} }},
	{exact: []string{"volume up"}, build: func(string) Intent { return VolumeUp{} }},
	{exact: []string{"volume down"}, build: func(string) Intent { return VolumeDown{} }},
	{exact: []string{"mute"}, build: func(string) Intent { return VolumeMute{} }},
}

// Parse trims and lower-cases text and returns the first matching intent.
func Parse(text string) Intent {
	cmd := strings.ToLower(strings.TrimSpace(text))

	for _, r := range rules {
		if r.prefix != "" {
			if strings.HasPrefix(cmd, r.prefix) {
				return r.build(strings.TrimSpace(cmd[len(r.prefix):]))
			}
			continue
		}
		for _, e := range r.exact {
			if cmd == e {
				return r.build("")
			}
		}
	}
	return Unknown{Text: cmd}
}

// mediaKeys binds the key-only intents to the key they click.
var mediaKeys = map[Intent]keys.KeyID{
	MediaToggle{}:   keys.Space,
	MediaNext{}:     keys.F9,
	MediaPrevious{}: keys.F7,
	VolumeUp{}:      keys.VolumeUp,
	VolumeDown{}:    keys.VolumeDown,
	VolumeMute{}:    keys.VolumeMute,
}

// ToAction converts an intent into the action the actuator applies.
func ToAction(in Intent) (action.Action, error) {
	switch v := in.(type) {
	case OpenApp:
		return action.OpenApp{Name: v.Name}, nil
	case TypeText:
		return action.TypeText{Text: v.Text}, nil
	case Unknown:
		return nil, action.Unknown("Unknown voice command: %s", v.Text)
	}
	if k, ok := mediaKeys[in]; ok {
		return action.KeyPress{Key: k}, nil
	}
	return nil, action.Unknown("Unknown voice command")
}

// Describe returns the success message for an applied intent.
func Describe(in Intent) string {
	switch v := in.(type) {
	case OpenApp:
		return "Opened " + v.Name
	case TypeText:
		return "Typed: " + v.Text
	case MediaToggle:
		return "Toggled play/pause"
	case MediaNext:
		return "Next track"
	case MediaPrevious:
		return "Previous track"
	case VolumeUp:
		return "Volume up"
	case VolumeDown:
		return "Volume down"
	case VolumeMute:
		return "Muted"
	}
	return ""
}
