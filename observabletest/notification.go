package observabletest

// Kind labels a scripted or recorded signal.
type Kind int

const (
	KindNext Kind = iota
	KindError
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Notification is one signal together with the notional tick it belongs
// to. Ticks come from diagram positions on the scripted side and from
// arrival order on the recording side.
type Notification[T any] struct {
	Kind  Kind
	Value T
	Err   error
	Tick  int
}

// Next builds a value notification.
func Next[T any](tick int, value T) Notification[T] {
	return Notification[T]{Kind: KindNext, Value: value, Tick: tick}
}

// Err builds an error notification.
func Err[T any](tick int, err error) Notification[T] {
	return Notification[T]{Kind: KindError, Err: err, Tick: tick}
}

// Complete builds a completion notification.
func Complete[T any](tick int) Notification[T] {
	return Notification[T]{Kind: KindComplete, Tick: tick}
}
