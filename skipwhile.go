package observable

// SkipWhile drops values while predicate returns true, forwards the first
// value it rejects and everything after it without consulting the
// predicate again. index counts predicate invocations and only advances
// when the predicate returns without error. A predicate error is delivered
// downstream as the terminal error and the upstream execution is released
// through the subscription chain.
//
// Skipping state is local to each subscription, so re-subscribing the same
// piped Observable starts over.
func SkipWhile[T any](predicate func(value T, index int) (bool, error)) Operator[T, T] {
	return func(source *Observable[T]) *Observable[T] {
		return New(func(dest *Subscriber[T]) {
			forwarding := false
			index := 0
			source.Subscribe(operatorSubscriber(dest, func(value T) {
				if forwarding {
					dest.Next(value)
					return
				}
				skip, err := predicate(value, index)
				if err != nil {
					dest.Error(err)
					return
				}
				index++
				if !skip {
					forwarding = true
					dest.Next(value)
				}
			}))
		})
	}
}
