package observable

// Skip drops the first count values and forwards the rest. A count of zero
// or less forwards everything.
func Skip[T any](count int) Operator[T, T] {
	return func(source *Observable[T]) *Observable[T] {
		if count <= 0 {
			return source
		}
		return New(func(dest *Subscriber[T]) {
			seen := 0
			source.Subscribe(operatorSubscriber(dest, func(value T) {
				seen++
				if seen > count {
					dest.Next(value)
				}
			}))
		})
	}
}
