package qfs

import (
	"math/bits"

	"github.com/0xC0000054/dbpf/internal/pool"
)

// encoder holds the transient state of a single Compress call: the hash
// chains used for match search and the output cursor/literal bookkeeping.
type encoder struct {
	data []byte

	windowSize int
	windowMask int
	hashMask   uint32
	shift      uint

	head []int32 // hashMask+1 entries; 0 = empty, else position+1
	prev []int32 // windowSize entries; 0 = chain end, else position+1

	out          []byte
	literalStart int // input position of the first not-yet-flushed literal byte
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}

func newEncoder(data []byte) (*encoder, func()) {
	windowSize := nextPow2(len(data))
	if windowSize > maxWindow {
		windowSize = maxWindow
	}

	hashSize := windowSize / 2
	if hashSize < minHashSize {
		hashSize = minHashSize
	}

	log2Hash := bits.Len(uint(hashSize - 1))
	shift := uint((log2Hash + 2) / 3) // ceil(log2(hashSize)/3)

	head, cleanupHead := pool.GetInt32Slice(hashSize)
	prev, cleanupPrev := pool.GetInt32Slice(windowSize)

	e := &encoder{
		data:       data,
		windowSize: windowSize,
		windowMask: windowSize - 1,
		hashMask:   uint32(hashSize - 1),
		shift:      shift,
		head:       head,
		prev:       prev,
		out:        make([]byte, 0, len(data)),
	}

	return e, func() {
		cleanupHead()
		cleanupPrev()
	}
}

func (e *encoder) hash3(p int) uint32 {
	h := uint32(e.data[p])
	h = (h << e.shift) ^ uint32(e.data[p+1])
	h = (h << e.shift) ^ uint32(e.data[p+2])

	return h & e.hashMask
}

func (e *encoder) insert(p int) {
	if p+2 >= len(e.data) {
		return
	}

	h := e.hash3(p)
	e.prev[p&e.windowMask] = e.head[h]
	e.head[h] = int32(p + 1)
}

// matchLength returns how many bytes at a and b agree, up to limit.
func (e *encoder) matchLength(a, b, limit int) int {
	n := 0
	for n < limit && e.data[a+n] == e.data[b+n] {
		n++
	}

	return n
}

// findMatch searches the hash chain anchored at p for the longest
// acceptable back-reference, applying the codec's offset/length acceptance
// policy. Returns (0, 0) if no acceptable match exists.
func (e *encoder) findMatch(p int) (length, distance int) {
	if p+minMatch > len(e.data) {
		return 0, 0
	}

	h := e.hash3(p)
	cand := e.head[h]

	remaining := len(e.data) - p
	limit := maxMatch
	if remaining < limit {
		limit = remaining
	}

	bestLen, bestDist := 0, 0
	tries := 0

	for cand != 0 {
		candPos := int(cand) - 1
		dist := p - candPos
		if dist <= 0 || dist > e.windowSize {
			break
		}

		n := e.matchLength(candPos, p, limit)
		if n > bestLen {
			bestLen, bestDist = n, dist
			if bestLen >= niceLength {
				break
			}
		}

		chainLimit := maxChain
		if bestLen >= goodLength {
			chainLimit = maxChain / 4
		}
		tries++
		if tries >= chainLimit {
			break
		}

		cand = e.prev[candPos&e.windowMask]
	}

	if bestLen < minMatch {
		return 0, 0
	}
	if !acceptMatch(bestDist, bestLen) {
		return 0, 0
	}

	return bestLen, bestDist
}

// acceptMatch applies the codec's offset/length acceptance policy.
func acceptMatch(distance, length int) bool {
	switch {
	case distance <= 1024:
		return true
	case distance <= 16384 && length >= 4:
		return true
	case length >= 5:
		return true
	default:
		return false
	}
}

// flushLiteralRuns emits literal-run opcodes (0xE0..0xFB) covering as many
// complete multiple-of-4 byte groups as possible between literalStart and
// end, leaving 0..3 leftover bytes pending for the next opcode's plain field.
func (e *encoder) flushLiteralRuns(end int) {
	avail := end - e.literalStart
	for avail >= 4 {
		run := avail
		if run > 112 {
			run = 112
		}
		run -= run % 4

		opByte := byte(0xE0 + ((run - 4) >> 2))
		e.out = append(e.out, opByte)
		e.out = append(e.out, e.data[e.literalStart:e.literalStart+run]...)

		e.literalStart += run
		avail -= run
	}
}

// emitMatch flushes any full literal runs before matchStart, then emits the
// shortest opcode shape that can carry (length, offset) along with the 0..3
// leftover literal bytes immediately preceding the match.
func (e *encoder) emitMatch(matchStart, length, offset int) {
	e.flushLiteralRuns(matchStart)
	plain := matchStart - e.literalStart

	var op []byte
	switch {
	case length <= 10 && offset <= 1024:
		high := byte((offset - 1) >> 8)
		b0 := byte(plain) | byte(length-3)<<2 | high<<5
		b1 := byte((offset - 1) & 0xFF)
		op = []byte{b0, b1}

	case length <= 67 && offset <= 16384:
		b0 := byte(0x80 | (length - 4))
		b1 := byte(plain)<<6 | byte(((offset-1)>>8)&0x3F)
		b2 := byte((offset - 1) & 0xFF)
		op = []byte{b0, b1, b2}

	default:
		cc := length - 5
		high2 := byte((cc >> 8) & 0x3)
		bit4 := byte(((offset - 1) >> 16) & 0x1)
		b0 := byte(0xC0) | byte(plain) | high2<<2 | bit4<<4
		b1 := byte(((offset - 1) >> 8) & 0xFF)
		b2 := byte((offset - 1) & 0xFF)
		b3 := byte(cc & 0xFF)
		op = []byte{b0, b1, b2, b3}
	}

	e.out = append(e.out, op...)
	if plain > 0 {
		e.out = append(e.out, e.data[matchStart-plain:matchStart]...)
	}

	e.literalStart = matchStart + length
}

// finish flushes trailing literal runs and writes the terminating EOF opcode.
func (e *encoder) finish() {
	n := len(e.data)
	e.flushLiteralRuns(n)

	trailing := n - e.literalStart
	e.out = append(e.out, byte(0xFC|trailing))
	if trailing > 0 {
		e.out = append(e.out, e.data[e.literalStart:n]...)
	}
	e.literalStart = n
}

// compressOpcodes runs the lazy-matching LZ77 front end over data and
// returns the encoded opcode stream (no QFS header).
func compressOpcodes(data []byte) []byte {
	e, cleanup := newEncoder(data)
	defer cleanup()

	n := len(data)
	i := 0

	havePrev := false
	prevLen, prevDist, prevPos := 0, 0, 0

	for i < n {
		curLen, curDist := e.findMatch(i)

		if havePrev && prevLen >= minMatch && curLen <= prevLen {
			e.emitMatch(prevPos, prevLen, prevDist)

			for k := prevPos + 1; k < prevPos+prevLen; k++ {
				e.insert(k)
			}

			i = prevPos + prevLen
			havePrev = false

			continue
		}

		e.insert(i)
		if curLen >= minMatch {
			havePrev, prevLen, prevDist, prevPos = true, curLen, curDist, i
		} else {
			havePrev = false
		}
		i++
	}

	if havePrev && prevLen >= minMatch {
		e.emitMatch(prevPos, prevLen, prevDist)
	}

	e.finish()

	return e.out
}
