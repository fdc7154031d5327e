package observable

// Take forwards the first count values and completes as the last of them
// is delivered, releasing the upstream before it can push more. A count of
// zero or less completes without subscribing upstream.
func Take[T any](count int) Operator[T, T] {
	return func(source *Observable[T]) *Observable[T] {
		if count <= 0 {
			return Empty[T]()
		}
		return New(func(dest *Subscriber[T]) {
			seen := 0
			source.Subscribe(operatorSubscriber(dest, func(value T) {
				seen++
				dest.Next(value)
				if seen >= count {
					dest.Complete()
				}
			}))
		})
	}
}
