package styled

import "github.com/fatih/color"

// DimmedColor returns a dimmed *color.Color to print secondary information.
func DimmedColor() *color.Color {
	return color.RGB(128, 128, 128)
}

// SuccessColor returns the *color.Color for the final success message.
func SuccessColor() *color.Color {
	return color.New(color.FgGreen, color.Bold)
}

// ErrorColor returns the *color.Color for failures and validation
// messages.
func ErrorColor() *color.Color {
	return color.New(color.FgRed, color.Bold)
}
