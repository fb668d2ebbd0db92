package codec

// Logger is the minimal sink Dispatcher and Context accept for
// debug-level dispatch/dedup/placeholder-resolution traces. It is kept
// free of any concrete logging dependency so the codec package never
// has to import zap itself; engine.NewZapLogger supplies the default
// adapter. A stdlib *log.Logger does not satisfy it as is (it has
// Printf, not Debugf) and needs a one-method wrapper.
type Logger interface {
	Debugf(format string, args ...any)
}

// noopLogger discards everything; used whenever a caller passes a nil
// Logger so call sites never need a nil check.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}

// NoopLogger is the default Logger used when none is supplied.
var NoopLogger Logger = noopLogger{}
