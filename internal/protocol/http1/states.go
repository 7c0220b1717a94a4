package http1

type connState uint8

const (
	eIdle connState = iota
	eAwaitingRequest
	eDispatching
	eClosing
)

func (c connState) String() string {
	switch c {
	case eIdle:
		return "idle"
	case eAwaitingRequest:
		return "awaiting request"
	case eDispatching:
		return "dispatching"
	case eClosing:
		return "closing"
	default:
		return "unknown"
	}
}
