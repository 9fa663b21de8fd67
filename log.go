package golpsa

// Logger is the minimal logging surface used by the library and its
// engine adapters. The standard library's *log.Logger satisfies it.
type Logger interface {
	Print(v ...interface{})
}

type noopLogger struct{}

func (noopLogger) Print(v ...interface{}) {}
