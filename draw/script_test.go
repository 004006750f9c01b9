package draw

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScript_Flush(t *testing.T) {
	s := NewScript("chart")
	assert.Equal(t, "", s.Flush())

	s.BeginPath()
	s.SetStrokeStyle("#bbb")
	s.MoveTo(0, 1.5)
	s.FillText(`Nov "17"`, 5, 10)
	s.Stroke()

	program := s.Flush()
	assert.True(t, strings.HasPrefix(program, `(()=>{const e=document.getElementById("chart");`))
	assert.Contains(t, program, `c.beginPath();c.strokeStyle="#bbb";c.moveTo(0,1.5);`)
	assert.Contains(t, program, `c.fillText("Nov \"17\"",5,10);c.stroke();`)
	assert.True(t, strings.HasSuffix(program, "})()"))

	assert.Equal(t, "", s.Flush(), "flush drains pending calls")
}

func TestScript_Replay(t *testing.T) {
	s := NewScript("slider-canvas")
	s.Resize(600, 40, 1200, 80)
	s.BeginPath()
	s.LineTo(1, 2)
	s.Flush()

	replay := s.Replay()
	assert.Contains(t, replay, `e.style.width="600px";e.style.height="40px";e.width=1200;e.height=80;`)
	assert.Contains(t, replay, "c.lineTo(1,2);")

	// A full clear starts a new picture.
	s.ClearRect(0, 0, 1200, 80)
	s.MoveTo(3, 4)
	replay = s.Replay()
	assert.NotContains(t, replay, "c.lineTo(1,2)")
	assert.Contains(t, replay, "c.clearRect(0,0,1200,80);c.moveTo(3,4);")

	// A partial clear does not.
	s.ClearRect(10, 10, 5, 5)
	assert.Contains(t, s.Replay(), "c.moveTo(3,4);")
}
