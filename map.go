package observable

// Map forwards each value through project. index counts invocations and
// only advances when project returns without error; a project error is
// delivered downstream as the terminal error.
func Map[T, R any](project func(value T, index int) (R, error)) Operator[T, R] {
	return func(source *Observable[T]) *Observable[R] {
		return New(func(dest *Subscriber[R]) {
			index := 0
			source.Subscribe(operatorSubscriber(dest, func(value T) {
				mapped, err := project(value, index)
				if err != nil {
					dest.Error(err)
					return
				}
				index++
				dest.Next(mapped)
			}))
		})
	}
}
