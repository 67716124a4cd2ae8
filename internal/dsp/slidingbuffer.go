package dsp

// SlidingBuffer is a fixed-length ring of the most recently pushed samples.
// Read returns a borrowed, oldest-first view into the ring's backing array;
// the view is valid only until the next Push (Design Notes: "direct pointer
// into sliding-buffer storage" becomes a borrowed-view contract instead of a
// raw pointer, but the lifetime rule is the same).
type SlidingBuffer struct {
	buf     []complex64
	ordered []complex64 // scratch, oldest-first, rebuilt lazily by Read
	pos     int         // next write position
	dirty   bool
}

// NewSlidingBuffer creates a buffer holding the most recent length samples,
// initialized to zero.
func NewSlidingBuffer(length int) *SlidingBuffer {
	return &SlidingBuffer{
		buf:     make([]complex64, length),
		ordered: make([]complex64, length),
	}
}

// Reset zeros the buffer.
func (s *SlidingBuffer) Reset() {
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.pos = 0
	s.dirty = true
}

// Push admits x, evicting the oldest sample.
func (s *SlidingBuffer) Push(x complex64) {
	s.buf[s.pos] = x
	s.pos = (s.pos + 1) % len(s.buf)
	s.dirty = true
}

// Len returns the buffer's fixed length.
func (s *SlidingBuffer) Len() int {
	return len(s.buf)
}

// Read returns a borrowed view of the buffer's contents, oldest sample
// first. The returned slice aliases internal storage and is invalidated by
// the next Push.
func (s *SlidingBuffer) Read() []complex64 {
	if s.dirty {
		n := len(s.buf)
		for i := 0; i < n; i++ {
			s.ordered[i] = s.buf[(s.pos+i)%n]
		}
		s.dirty = false
	}
	return s.ordered
}
