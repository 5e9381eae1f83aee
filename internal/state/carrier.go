package state

import "context"

type contextKey string

const stackKey contextKey = "fluent.state.stack"

// ContextWithStack attaches stack to ctx so request handlers can reach it.
func ContextWithStack(ctx context.Context, stack *Stack) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, stackKey, stack)
}

// StackFromContext returns the stack attached to ctx, if any.
func StackFromContext(ctx context.Context) (*Stack, bool) {
	if ctx == nil {
		return nil, false
	}
	stack, ok := ctx.Value(stackKey).(*Stack)
	return stack, ok && stack != nil
}
