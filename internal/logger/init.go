package logger

// Initialize rebuilds the global logger from the environment. It is called
// after .env has been loaded so RUNSNAP_LOG_* set there take effect.
func Initialize() error {
	l, err := New(ConfigFromEnv())
	if err != nil {
		return err
	}
	SetLogger(l)
	return nil
}

// WithField is a convenience function that returns a logger with a field
func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}

// WithError is a convenience function that returns a logger with an error
func WithError(err error) *Logger {
	return GetLogger().WithError(err)
}
