package core

// Color is a foreground color for a screen cell.
type Color uint8

// Palette used by the board and HUD. Zombie parts use the earthy tones,
// warnings the bright ones.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorGray
	ColorBrown
	ColorDarkRed
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightMagenta
	ColorBrightWhite
	numColors
)

// ansi256 holds the terminal 256-color code of each palette entry.
var ansi256 = [numColors]string{
	ColorDefault:       "",
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorGray:          "245",
	ColorBrown:         "130",
	ColorDarkRed:       "88",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightMagenta: "13",
	ColorBrightWhite:   "15",
}

// ANSI returns the 256-color code for c, or "" for the terminal default
// and unknown colors.
func (c Color) ANSI() string {
	if c >= numColors {
		return ""
	}
	return ansi256[c]
}
