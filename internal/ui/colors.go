package ui

// ColorPrimary returns the escape code for headings and prompts.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the escape code for labels.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorSuccess returns the escape code for positive outcomes.
func ColorSuccess() string { return GetCurrentTheme().Success }

// ColorWarning returns the escape code for warnings.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the escape code for failures.
func ColorError() string { return GetCurrentTheme().Error }

// ColorInfo returns the escape code for values.
func ColorInfo() string { return GetCurrentTheme().Info }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// Paint wraps s in color and a reset. It returns s unchanged when color is
// empty.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
