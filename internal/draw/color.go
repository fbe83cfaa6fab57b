package draw

import "strconv"

// Color is a palette entry for canvas pixels. ColorNone is transparent.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGray
	ColorGreen
	ColorRed
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorBlue
	ColorOrange
	colorCount
)

// ansiFG holds the SGR foreground code for each color. Background codes
// are the foreground code plus 10.
var ansiFG = [colorCount]int{
	ColorNone:    39,
	ColorWhite:   97,
	ColorGray:    90,
	ColorGreen:   92,
	ColorRed:     91,
	ColorYellow:  93,
	ColorCyan:    96,
	ColorMagenta: 95,
	ColorBlue:    94,
	ColorOrange:  33,
}

// SGR sequences for text
const (
	ColorReset = "\033[0m"
	TextBold   = "\033[1m"
)

// FG returns the escape sequence that selects c as the foreground color.
func (c Color) FG() string {
	if c >= colorCount {
		c = ColorNone
	}
	return "\033[" + strconv.Itoa(ansiFG[c]) + "m"
}

// appendSGR appends the sequence selecting fg and bg. ColorNone selects the
// terminal default.
func appendSGR(dst []byte, fg, bg Color) []byte {
	dst = append(dst, "\033[0;"...)
	dst = strconv.AppendInt(dst, int64(ansiFG[fg]), 10)
	dst = append(dst, ';')
	bgCode := 49
	if bg != ColorNone {
		bgCode = ansiFG[bg] + 10
	}
	dst = strconv.AppendInt(dst, int64(bgCode), 10)
	return append(dst, 'm')
}
