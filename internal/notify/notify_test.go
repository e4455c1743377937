package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("GRIDPAINT_NOTIFY_TITLE", "Painter")
	t.Setenv("GRIDPAINT_NOTIFY_EXPORT_TEXT", "Map ready: %s")

	prefs := LoadPreferences()
	assert.Equal(t, "Painter", prefs.Title)
	assert.Equal(t, "Map ready: %s", prefs.Events[EventExport].Template)
	assert.Equal(t, "Saved %s", prefs.Events[EventSave].Template)
}

func TestNewClonesPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	n := New(prefs)
	prefs.Events[EventSave] = EventPreference{Template: "changed"}

	assert.Equal(t, "Saved %s", n.template(EventSave))
}

func TestEventsDisabledByDefault(t *testing.T) {
	n := New(DefaultPreferences())
	for _, ev := range []Event{EventSave, EventCopy, EventExport} {
		assert.False(t, n.enabledFor(ev), ev)
	}
	n.Enable(EventCopy, true)
	assert.True(t, n.enabledFor(EventCopy))

	var nilNotifier *Notifier
	nilNotifier.Enable(EventSave, true)
	assert.False(t, nilNotifier.enabledFor(EventSave))
	assert.NotPanics(t, func() { nilNotifier.Save("out.png") })
}
