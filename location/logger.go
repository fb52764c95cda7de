package location

// Logf is the package-level diagnostic logger.
// It discards everything unless replaced via SetLogger.
var Logf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces Logf. A nil f disables logging.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
