package auth

import "context"

type ctxKey string

const ctxKeySub ctxKey = "sub"

func WithSubject(ctx context.Context, sub int64) context.Context {
	return context.WithValue(ctx, ctxKeySub, sub)
}

// SubjectFromContext returns the authenticated user id, or 0 when absent.
func SubjectFromContext(ctx context.Context) int64 {
	if v := ctx.Value(ctxKeySub); v != nil {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
