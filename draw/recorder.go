package draw

// Op is one recorded drawing call.
type Op struct {
	Name string
	Args []float64
	Text string
}

// Recorder logs drawing calls instead of rasterising them.
type Recorder struct {
	Ops []Op
	// Width and Height of the backing store after the last Resize.
	Width  int
	Height int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Reset forgets every recorded op.
func (r *Recorder) Reset() {
	r.Ops = nil
}

// Count returns how many recorded ops carry the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the recorded ops carrying the given name, in order.
func (r *Recorder) Filter(name string) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Name == name {
			ops = append(ops, op)
		}
	}
	return ops
}

func (r *Recorder) add(name string, text string, args ...float64) {
	r.Ops = append(r.Ops, Op{name, args, text})
}

func (r *Recorder) Resize(_, _, width, height int) {
	r.Width, r.Height = width, height
	r.add("resize", "", float64(width), float64(height))
}

func (r *Recorder) ClearRect(x, y, width, height float64) {
	r.add("clearRect", "", x, y, width, height)
}

func (r *Recorder) BeginPath() { r.add("beginPath", "") }
func (r *Recorder) ClosePath() { r.add("closePath", "") }
func (r *Recorder) Stroke()    { r.add("stroke", "") }
func (r *Recorder) Fill()      { r.add("fill", "") }
func (r *Recorder) Save()      { r.add("save", "") }
func (r *Recorder) Restore()   { r.add("restore", "") }

func (r *Recorder) MoveTo(x, y float64) { r.add("moveTo", "", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.add("lineTo", "", x, y) }

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.add("arc", "", x, y, radius, startAngle, endAngle)
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.add("fillText", text, x, y)
}

func (r *Recorder) SetLineWidth(width float64)  { r.add("lineWidth", "", width) }
func (r *Recorder) SetStrokeStyle(style string) { r.add("strokeStyle", style) }
func (r *Recorder) SetFillStyle(style string)   { r.add("fillStyle", style) }
func (r *Recorder) SetFont(font string)         { r.add("font", font) }
