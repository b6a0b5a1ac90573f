package forecast

import "github.com/couchcryptid/storm-forecast-service/internal/domain"

// positionHistory is a fixed-size ring of the most recent track positions.
type positionHistory struct {
	buf  []domain.Geo
	next int
	size int
}

func newPositionHistory(capacity int) *positionHistory {
	return &positionHistory{buf: make([]domain.Geo, capacity)}
}

func (h *positionHistory) push(g domain.Geo) {
	h.buf[h.next] = g
	h.next = (h.next + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// oldest returns the earliest retained position.
func (h *positionHistory) oldest() (domain.Geo, bool) {
	if h.size == 0 {
		return domain.Geo{}, false
	}
	if h.size < len(h.buf) {
		return h.buf[0], true
	}
	return h.buf[h.next], true
}
