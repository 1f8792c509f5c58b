//go:build !darwin

package hotkey

import "golang.design/x/hotkey"

// Label is how the shortcut is shown in menus.
const Label = "Ctrl+Shift+N"

var captureModifiers = []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}
