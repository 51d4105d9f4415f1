package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/komunity_app/internal/middleware"
)

// BaseService gives every service the request-scoped logger.
// Backend services log under the request ID set by the logging middleware;
// client services log on whatever logger the caller put in ctx.
type BaseService struct{}

func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs msg with err as the "error" attribute. A nil err is logged without it.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, attrs ...any) {
	if err != nil {
		attrs = append([]any{slog.String("error", err.Error())}, attrs...)
	}
	s.GetLogger(ctx).ErrorContext(ctx, msg, attrs...)
}

func (s *BaseService) LogWarn(ctx context.Context, msg string, attrs ...any) {
	s.GetLogger(ctx).WarnContext(ctx, msg, attrs...)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, attrs ...any) {
	s.GetLogger(ctx).InfoContext(ctx, msg, attrs...)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, attrs ...any) {
	s.GetLogger(ctx).DebugContext(ctx, msg, attrs...)
}
