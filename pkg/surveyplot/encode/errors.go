package encode

import "fmt"

// PaletteExhaustedError indicates more distinct categories than a channel can tell apart.
type PaletteExhaustedError struct {
	Channel string // "color" or "pattern"
	Need    int
	Have    int
}

func (e *PaletteExhaustedError) Error() string {
	return fmt.Sprintf("%s palette exhausted: %d categories but only %d entries", e.Channel, e.Need, e.Have)
}
