package sizing

import "sort"

// SizeFunc returns the size of the item at index.
type SizeFunc func(index int) int

// Axis holds cached prefix sums over item sizes along one dimension.
//
// Axis is not safe for concurrent use; it is owned by a single virtualizer.
type Axis struct {
	count int
	size  SizeFunc

	// fixed is the uniform item size when every item has the same size.
	// Zero means sizes come from size.
	fixed int

	// offsets[i] and sizes[i] are valid for i <= lastMeasured.
	offsets      []int
	sizes        []int
	lastMeasured int
}

// NewFixed creates an axis where every item has the same size.
func NewFixed(count, size int) *Axis {
	if size < 1 {
		size = 1
	}
	return &Axis{count: clampCount(count), fixed: size, lastMeasured: -1}
}

// New creates an axis whose item sizes are produced by fn.
// Negative sizes are treated as zero.
func New(count int, fn SizeFunc) *Axis {
	a := &Axis{count: clampCount(count), size: fn, lastMeasured: -1}
	a.alloc()
	return a
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (a *Axis) alloc() {
	if cap(a.offsets) < a.count {
		offsets := make([]int, a.count)
		sizes := make([]int, a.count)
		copy(offsets, a.offsets)
		copy(sizes, a.sizes)
		a.offsets, a.sizes = offsets, sizes
		return
	}
	a.offsets = a.offsets[:a.count]
	a.sizes = a.sizes[:a.count]
}

// Count returns the number of items on the axis.
func (a *Axis) Count() int {
	return a.count
}

// IsFixed reports whether all items share a single size.
func (a *Axis) IsFixed() bool {
	return a.fixed > 0
}

// SetCount changes the number of items. Cached offsets below the new count
// are kept.
func (a *Axis) SetCount(n int) {
	n = clampCount(n)
	if n == a.count {
		return
	}
	a.count = n
	if a.fixed > 0 {
		return
	}
	a.alloc()
	if a.lastMeasured >= n {
		a.lastMeasured = n - 1
	}
}

// SetFixed switches the axis to a uniform item size.
func (a *Axis) SetFixed(size int) {
	if size < 1 {
		size = 1
	}
	a.fixed = size
	a.size = nil
	a.offsets, a.sizes = nil, nil
	a.lastMeasured = -1
}

// SetSizeFunc switches the axis to per-item sizes and drops every cached offset.
func (a *Axis) SetSizeFunc(fn SizeFunc) {
	a.fixed = 0
	a.size = fn
	a.alloc()
	a.lastMeasured = -1
}

// ResetAfter drops cached offsets for index and every item after it.
// Offsets for items before index stay valid.
func (a *Axis) ResetAfter(index int) {
	if a.fixed > 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index-1 < a.lastMeasured {
		a.lastMeasured = index - 1
	}
}

// LastMeasured returns the highest index whose offset is cached, or -1.
func (a *Axis) LastMeasured() int {
	if a.fixed > 0 {
		return a.count - 1
	}
	return a.lastMeasured
}

// measure extends the cached prefix up to and including index.
func (a *Axis) measure(index int) {
	if index >= a.count {
		index = a.count - 1
	}
	for i := a.lastMeasured + 1; i <= index; i++ {
		s := 0
		if a.size != nil {
			s = a.size(i)
		}
		if s < 0 {
			s = 0
		}
		off := 0
		if i > 0 {
			off = a.offsets[i-1] + a.sizes[i-1]
		}
		a.offsets[i] = off
		a.sizes[i] = s
	}
	if index > a.lastMeasured {
		a.lastMeasured = index
	}
}

// Size returns the size of the item at index, or zero when out of range.
func (a *Axis) Size(index int) int {
	if index < 0 || index >= a.count {
		return 0
	}
	if a.fixed > 0 {
		return a.fixed
	}
	a.measure(index)
	return a.sizes[index]
}

// Offset returns the start of the item at index. Offset(Count()) is Total().
func (a *Axis) Offset(index int) int {
	if index <= 0 || a.count == 0 {
		return 0
	}
	if index >= a.count {
		return a.Total()
	}
	if a.fixed > 0 {
		return index * a.fixed
	}
	a.measure(index)
	return a.offsets[index]
}

// End returns the end (exclusive) of the item at index.
func (a *Axis) End(index int) int {
	return a.Offset(index) + a.Size(index)
}

// Total returns the sum of all item sizes.
func (a *Axis) Total() int {
	if a.count == 0 {
		return 0
	}
	if a.fixed > 0 {
		return a.count * a.fixed
	}
	a.measure(a.count - 1)
	last := a.count - 1
	return a.offsets[last] + a.sizes[last]
}

// IndexAt returns the item covering offset. Offsets before the first item map
// to 0 and offsets past the end map to the last item.
func (a *Axis) IndexAt(offset int) int {
	if a.count == 0 || offset <= 0 {
		return 0
	}
	if a.fixed > 0 {
		idx := offset / a.fixed
		if idx >= a.count {
			return a.count - 1
		}
		return idx
	}

	lo := 0
	hi := a.lastMeasured
	if hi < 0 || a.offsets[hi]+a.sizes[hi] <= offset {
		// Grow the measured prefix exponentially until it covers offset.
		lo = max(hi, 0)
		bound := max(hi, 1)
		for {
			if bound >= a.count-1 {
				bound = a.count - 1
				break
			}
			a.measure(bound)
			if a.offsets[bound]+a.sizes[bound] > offset {
				break
			}
			bound *= 2
		}
		a.measure(bound)
		hi = bound
	}

	// Largest i in [lo, hi] with offsets[i] <= offset.
	n := hi - lo + 1
	i := sort.Search(n, func(k int) bool {
		return a.offsets[lo+k] > offset
	})
	idx := lo + i - 1
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Window returns the half-open index range [from, to) of items intersecting
// [start, start+extent), widened by overscan items on each side and clamped to
// the axis bounds.
func (a *Axis) Window(start, extent, overscan int) (from, to int) {
	if a.count == 0 {
		return 0, 0
	}
	if overscan < 0 {
		overscan = 0
	}
	if start < 0 {
		start = 0
	}
	first := a.IndexAt(start)
	last := first
	if extent > 0 {
		last = a.IndexAt(start + extent - 1)
	}
	from = max(first-overscan, 0)
	to = min(last+1+overscan, a.count)
	return from, to
}
