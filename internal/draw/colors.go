package draw

// ANSI SGR color sequences used by the HUD.
const (
	ColorReset       = "\033[0m"
	ColorRed         = "\033[31m"
	ColorYellow      = "\033[33m"
	ColorBrightCyan  = "\033[96m"
	ColorBrightWhite = "\033[97m"
	ColorDim         = "\033[2m"
)
