package hotkey

import "golang.design/x/hotkey"

// Label is how the shortcut is shown in menus.
const Label = "⌘⇧N"

var captureModifiers = []hotkey.Modifier{hotkey.ModCmd, hotkey.ModShift}
