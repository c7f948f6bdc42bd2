package application

import "context"

// UseCase is one instrumented application operation, such as changing a cart line.
type UseCase[C any, R any] interface {
	Execute(ctx context.Context, cmd C) (R, error)
}
