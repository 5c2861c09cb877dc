package core

// Logger is any service that can log messages at the usual levels.
// Implementations may inspect args for well-known types (eg. the acting user)
// before forwarding them.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
