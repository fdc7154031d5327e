package log

import (
	"fmt"
	"os"
	"sync"

	"github.com/metacubex/observable"
	"github.com/metacubex/observable/common/channel"

	log "github.com/sirupsen/logrus"
)

var (
	logCh  = channel.NewInfiniteChannel[Event]()
	source = observable.NewSubject[Event]()
	level  = INFO
)

func init() {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.999999999Z07:00",
	})

	go process()
}

// process pumps emitted events into the subject. Emission stays off the
// subscriber callback path.
func process() {
	for event := range logCh.Out() {
		source.Next(event)
	}
	source.Complete()
}

type Event struct {
	LogLevel LogLevel
	Payload  string
}

func (e *Event) Type() string {
	return e.LogLevel.String()
}

func Infoln(format string, v ...any) {
	event := newLog(INFO, format, v...)
	logCh.In() <- event
	print(event)
}

func Warnln(format string, v ...any) {
	event := newLog(WARNING, format, v...)
	logCh.In() <- event
	print(event)
}

func Errorln(format string, v ...any) {
	event := newLog(ERROR, format, v...)
	logCh.In() <- event
	print(event)
}

func Debugln(format string, v ...any) {
	event := newLog(DEBUG, format, v...)
	logCh.In() <- event
	print(event)
}

func Fatalln(format string, v ...any) {
	log.Fatalf(format, v...)
}

// Subscribe opens a feed of the events emitted from now on. The feed is
// buffered without bound, so a slow reader never blocks emission. Closing
// the returned subscription stops the feed; the channel then drains and
// closes.
func Subscribe() (<-chan Event, *observable.Subscription) {
	buffer := channel.NewInfiniteChannel[Event]()

	var (
		mu     sync.Mutex
		closed bool
	)
	finish := func() {
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			closed = true
			buffer.Close()
		}
	}

	sub := source.Subscribe(observable.NewObserver(
		func(event Event) {
			mu.Lock()
			defer mu.Unlock()
			if !closed {
				buffer.In() <- event
			}
		},
		func(error) { finish() },
		finish,
	))
	sub.Add(func() error {
		finish()
		return nil
	})
	return buffer.Out(), sub
}

func Level() LogLevel {
	return level
}

func SetLevel(newLevel LogLevel) {
	level = newLevel
}

func print(data Event) {
	if data.LogLevel < level {
		return
	}
	switch data.LogLevel {
	case INFO:
		log.Infoln(data.Payload)
	case WARNING:
		log.Warnln(data.Payload)
	case ERROR:
		log.Errorln(data.Payload)
	case DEBUG:
		log.Debugln(data.Payload)
	}
}

func newLog(logLevel LogLevel, format string, v ...any) Event {
	return Event{
		LogLevel: logLevel,
		Payload:  fmt.Sprintf(format, v...),
	}
}
