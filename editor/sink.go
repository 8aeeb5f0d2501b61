package editor

// Sink receives finished frames.
type Sink interface {
	WriteFrame(Frame) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Frame) error

func (f SinkFunc) WriteFrame(fr Frame) error { return f(fr) }
