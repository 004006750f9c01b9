package draw

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Script records drawing calls as JavaScript against the canvas element with
// the given id, to be executed by the browser.
type Script struct {
	// id of the target canvas element.
	id string
	// sizing holds the statements that size the element, kept for Replay.
	sizing []string
	// pending holds statements not yet handed out by Flush.
	pending []string
	// picture holds every statement since the last full clear, kept for Replay.
	picture []string
	width   int
	height  int
}

func NewScript(elementID string) *Script {
	return &Script{id: elementID}
}

func (s *Script) ElementID() string {
	return s.id
}

// Flush returns a program for the calls recorded since the last Flush, or an
// empty string when there are none.
func (s *Script) Flush() string {
	if len(s.pending) == 0 {
		return ""
	}
	program := s.program(s.pending)
	s.pending = s.pending[:0]
	return program
}

// Replay returns a program that rebuilds the whole current picture, for a
// browser that connected after the calls were flushed.
func (s *Script) Replay() string {
	statements := make([]string, 0, len(s.sizing)+len(s.picture))
	statements = append(statements, s.sizing...)
	statements = append(statements, s.picture...)
	if len(statements) == 0 {
		return ""
	}
	return s.program(statements)
}

func (s *Script) program(statements []string) string {
	var b strings.Builder
	b.WriteString("(()=>{const e=document.getElementById(")
	b.WriteString(quote(s.id))
	b.WriteString(");if(!e)return;const c=e.getContext('2d');")
	for _, st := range statements {
		b.WriteString(st)
		b.WriteByte(';')
	}
	b.WriteString("})()")
	return b.String()
}

func (s *Script) emit(statement string) {
	s.pending = append(s.pending, statement)
	s.picture = append(s.picture, statement)
}

func (s *Script) call(method string, args ...float64) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = num(a)
	}
	s.emit("c." + method + "(" + strings.Join(parts, ",") + ")")
}

func (s *Script) Resize(cssWidth, cssHeight, width, height int) {
	s.width, s.height = width, height
	s.sizing = []string{
		"e.style.width=" + quote(strconv.Itoa(cssWidth)+"px"),
		"e.style.height=" + quote(strconv.Itoa(cssHeight)+"px"),
		"e.width=" + strconv.Itoa(width),
		"e.height=" + strconv.Itoa(height),
	}
	// Resizing wipes the element, so the picture starts over.
	s.picture = nil
	s.pending = append(s.pending, s.sizing...)
}

func (s *Script) ClearRect(x, y, width, height float64) {
	if x <= 0 && y <= 0 && width >= float64(s.width) && height >= float64(s.height) {
		s.picture = nil
	}
	s.call("clearRect", x, y, width, height)
}

func (s *Script) BeginPath() { s.call("beginPath") }
func (s *Script) ClosePath() { s.call("closePath") }
func (s *Script) Stroke()    { s.call("stroke") }
func (s *Script) Fill()      { s.call("fill") }
func (s *Script) Save()      { s.call("save") }
func (s *Script) Restore()   { s.call("restore") }

func (s *Script) MoveTo(x, y float64) { s.call("moveTo", x, y) }
func (s *Script) LineTo(x, y float64) { s.call("lineTo", x, y) }

func (s *Script) Arc(x, y, radius, startAngle, endAngle float64) {
	s.call("arc", x, y, radius, startAngle, endAngle)
}

func (s *Script) FillText(text string, x, y float64) {
	s.emit("c.fillText(" + quote(text) + "," + num(x) + "," + num(y) + ")")
}

func (s *Script) SetLineWidth(width float64)  { s.emit("c.lineWidth=" + num(width)) }
func (s *Script) SetStrokeStyle(style string) { s.emit("c.strokeStyle=" + quote(style)) }
func (s *Script) SetFillStyle(style string)   { s.emit("c.fillStyle=" + quote(style)) }
func (s *Script) SetFont(font string)         { s.emit("c.font=" + quote(font)) }

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// quote renders a JavaScript string literal. JSON string syntax is a subset.
func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
