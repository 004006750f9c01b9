// Package dom models the few page elements the controllers touch: canvases,
// the slider root with its tagged children, and the document.
package dom

import (
	"tgchart/draw"
	"tgchart/events"
)

// Style holds the inline geometry of an element, in CSS pixels.
type Style struct {
	Width float64
	Left  float64
	Right float64
}

type Canvas struct {
	// id of the element in the page.
	id     string
	ctx    draw.Context
	events *events.Target
	// left is the x of the canvas bounding box relative to the viewport.
	left      float64
	cssWidth  int
	cssHeight int
	width     int
	height    int
}

func NewCanvas(id string, ctx draw.Context) *Canvas {
	return &Canvas{
		id:     id,
		ctx:    ctx,
		events: events.NewTarget(),
	}
}

func (c *Canvas) ID() string {
	return c.id
}

func (c *Canvas) Context() draw.Context {
	return c.ctx
}

func (c *Canvas) Events() *events.Target {
	return c.events
}

func (c *Canvas) Left() float64 {
	return c.left
}

func (c *Canvas) SetLeft(left float64) {
	c.left = left
}

// Width of the backing store in device pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height of the backing store in device pixels.
func (c *Canvas) Height() int {
	return c.height
}

func (c *Canvas) CSSWidth() int {
	return c.cssWidth
}

func (c *Canvas) CSSHeight() int {
	return c.cssHeight
}

// Resize sets the CSS box and the backing store size, clearing the drawing.
func (c *Canvas) Resize(cssWidth, cssHeight, width, height int) {
	c.cssWidth, c.cssHeight = cssWidth, cssHeight
	c.width, c.height = width, height
	if r, ok := c.ctx.(draw.Resizer); ok {
		r.Resize(cssWidth, cssHeight, width, height)
	}
}

type Element struct {
	id       string
	style    Style
	events   *events.Target
	children map[string]*Element
	canvas   *Canvas
}

func NewElement(id string) *Element {
	return &Element{
		id:       id,
		events:   events.NewTarget(),
		children: map[string]*Element{},
	}
}

func (e *Element) ID() string {
	return e.id
}

// Style returns the element's inline style for reading and writing.
func (e *Element) Style() *Style {
	return &e.style
}

func (e *Element) Events() *events.Target {
	return e.events
}

// Append adds a child tagged with the given data-el value.
func (e *Element) Append(tag string, child *Element) {
	e.children[tag] = child
}

// Query returns the child tagged with the given data-el value, or nil.
func (e *Element) Query(tag string) *Element {
	return e.children[tag]
}

func (e *Element) SetCanvas(c *Canvas) {
	e.canvas = c
}

// Canvas returns the nested canvas, or nil.
func (e *Element) Canvas() *Canvas {
	return e.canvas
}

// NewDocument returns the element standing in for the page document.
func NewDocument() *Element {
	return NewElement("document")
}
