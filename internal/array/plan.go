package array

// Plan is a broadcast plan: the common output shape for a set of inputs
// plus each input's broadcast-adjusted strides. A size-1 (or padded) axis
// contributes stride 0, so the same element is gathered regardless of the
// output coordinate on that axis.
//
// Plans are derived and ephemeral; they hold no references to array data.
type Plan struct {
	out        Shape
	outStrides []int
	inStrides  [][]int
	uniform    bool // all inputs already match the output shape
}

// NewPlan computes the broadcast plan for the given input shapes.
// Fails with ShapeMismatchError if the shapes cannot be broadcast.
func NewPlan(shapes ...Shape) (*Plan, error) {
	out, err := Broadcast(shapes...)
	if err != nil {
		return nil, err
	}

	p := &Plan{
		out:        out,
		outStrides: out.ComputeStrides(),
		inStrides:  make([][]int, len(shapes)),
		uniform:    true,
	}
	for i, s := range shapes {
		p.inStrides[i] = broadcastStrides(s, out)
		if !s.Equal(out) {
			p.uniform = false
		}
	}
	return p, nil
}

// OutShape returns the broadcast output shape.
func (p *Plan) OutShape() Shape {
	return p.out
}

// NumElements returns the number of output coordinates.
func (p *Plan) NumElements() int {
	return p.out.NumElements()
}

// Uniform reports whether every input already has the output shape, in
// which case flat indices map one-to-one and no gather is needed.
func (p *Plan) Uniform() bool {
	return p.uniform
}

// InStrides returns the broadcast-adjusted strides of input i.
func (p *Plan) InStrides(i int) []int {
	return p.inStrides[i]
}

// Index maps a flat output index to the flat index of input i via the
// input's broadcast-adjusted strides.
func (p *Plan) Index(flat, i int) int {
	in := p.inStrides[i]
	idx := 0
	for d := 0; d < len(p.outStrides); d++ {
		coord := flat / p.outStrides[d]
		flat %= p.outStrides[d]
		idx += coord * in[d]
	}
	return idx
}

// Coord decomposes a flat output index into its multi-dimensional
// coordinate. Used for fault reporting.
func (p *Plan) Coord(flat int) []int {
	coord := make([]int, len(p.outStrides))
	for d := 0; d < len(p.outStrides); d++ {
		coord[d] = flat / p.outStrides[d]
		flat %= p.outStrides[d]
	}
	return coord
}

// broadcastStrides computes strides for broadcasting inShape to outShape.
// Dimensions of size 1 and padded leading dimensions have stride 0.
func broadcastStrides(inShape, outShape Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	inDim := len(inShape)
	offset := outDim - inDim
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0:
			strides[i] = 0 // padded dimension
		case inShape[inIdx] == 1:
			strides[i] = 0 // broadcast dimension
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}
