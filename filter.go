package observable

// Filter forwards the values predicate accepts. index counts predicate
// invocations and only advances when the predicate returns without error;
// a predicate error is delivered downstream as the terminal error.
func Filter[T any](predicate func(value T, index int) (bool, error)) Operator[T, T] {
	return func(source *Observable[T]) *Observable[T] {
		return New(func(dest *Subscriber[T]) {
			index := 0
			source.Subscribe(operatorSubscriber(dest, func(value T) {
				keep, err := predicate(value, index)
				if err != nil {
					dest.Error(err)
					return
				}
				index++
				if keep {
					dest.Next(value)
				}
			}))
		})
	}
}
