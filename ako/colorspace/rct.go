package colorspace

// RCTForward is the integer reversible color transform.
func RCTForward(r, g, b int32) (y, cb, cr int32) {
	y = (r + 2*g + b) >> 2
	cb = b - g
	cr = r - g
	return
}

// RCTInverse undoes RCTForward exactly.
func RCTInverse(y, cb, cr int32) (r, g, b int32) {
	g = y - ((cb + cr) >> 2)
	r = cr + g
	b = cb + g
	return
}
