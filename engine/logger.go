package engine

import (
	"go.uber.org/zap"

	"github.com/graphwire/graphwire/codec"
)

// zapLogger adapts a *zap.SugaredLogger to codec.Logger, the same role
// the teacher's runtime.Logger interface plays for runtime.Manager,
// swapped from the teacher's plain *log.Logger onto zap's structured
// sugared logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

var _ codec.Logger = (*zapLogger)(nil)

// NewZapLogger wraps z as a codec.Logger. Passing nil uses
// zap.NewNop(), matching the teacher's pattern of never requiring
// callers to supply a logger.
func NewZapLogger(z *zap.Logger) codec.Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &zapLogger{sugar: z.Sugar()}
}

func (l *zapLogger) Debugf(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}
