package rangeset

type Iterator struct {
	current int
	ranges  []Range
}

func (r *Iterator) Value() Range {
	return r.ranges[r.current]
}

func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.ranges)
}
