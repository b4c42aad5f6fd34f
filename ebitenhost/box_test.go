package ebitenhost

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestBoxLook(t *testing.T) {
	b := NewBox("b", 0, 0, 10, 10, colorful.Color{R: 1})
	if l := b.Look(); l != (Look{Alpha: 1, Scale: 1}) {
		t.Errorf("neutral look = %+v", l)
	}

	b.SetProperty("opacity", "1.5")
	b.SetProperty("scale", "0.5")
	b.SetProperty("translateX", "10px")
	b.SetProperty("left", "5px")
	b.SetProperty("top", "-3px")
	b.SetProperty("width", "50%")
	want := Look{Alpha: 1, Scale: 0.5, DX: 15, DY: -3}
	if l := b.Look(); l != want {
		t.Errorf("look = %+v, want %+v", l, want)
	}

	b.SetProperty("opacity", "abc")
	if l := b.Look(); l.Alpha != 1 {
		t.Errorf("unparsable opacity gave alpha %v", l.Alpha)
	}

	b.ClearProperties()
	b.AddClass("complete")
	if l := b.Look(); l != (Look{Alpha: 1, Scale: 1}) {
		t.Errorf("cleared look = %+v", l)
	}
	if !b.HasClass("complete") {
		t.Error("class not recorded")
	}
}

func TestBoxClassStyle(t *testing.T) {
	b := NewBox("b", 0, 0, 10, 10, colorful.Color{R: 1})
	b.SetClassStyle("complete", map[string]string{"opacity": "0", "top": "30px"})
	if l := b.Look(); l != (Look{Alpha: 1, Scale: 1}) {
		t.Errorf("class style applied without the class: %+v", l)
	}

	b.AddClass("complete")
	if l := b.Look(); l != (Look{Alpha: 0, Scale: 1, DY: 30}) {
		t.Errorf("complete look = %+v", l)
	}

	b.SetProperty("opacity", "0.25")
	if l := b.Look(); l.Alpha != 0.25 || l.DY != 30 {
		t.Errorf("inline value must win over the class style: %+v", l)
	}
}
