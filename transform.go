package recache

import "context"

// Transform adapts a computation's output before it is returned or cached,
// usually to (de)serialize it into the cache's value type. Transforms
// compose by stacking: the outer transform receives the inner one's output.
// The computation's identity is unaffected; the name is supplied to Wrap.
//
// Transform is usable standalone, independent of any Cache.
func Transform[In, Out any](fn Func[In], t func(In) (Out, error)) Func[Out] {
	return func(ctx context.Context, call Call) (Out, error) {
		v, err := fn(ctx, call)
		if err != nil {
			var zero Out
			return zero, err
		}
		return t(v)
	}
}
