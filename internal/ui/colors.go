package ui

// ColorPrimary returns the escape code for results.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the escape code for hints and inactive cells.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorSuccess returns the escape code for settled rolls.
func ColorSuccess() string { return GetCurrentTheme().Success }

// ColorWarning returns the escape code for warnings.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the escape code for failures.
func ColorError() string { return GetCurrentTheme().Error }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }
