// Package parallax drives scroll-linked animation of page elements.
//
// Elements registered with a [Parallax] become assets. Each asset owns an
// animation range derived from the element's position and height, and a set
// of numeric properties (opacity, offsets, sizes, ...) it moves from a start
// value to an end value as the viewport scrolls through that range.
//
// # Quick start
//
// The rendering environment is supplied through [Host] and [Element]. The
// host forwards its scroll and resize events:
//
//	p := parallax.New(host)
//
//	opts := parallax.DefaultOptions()
//	opts.Animation.Type = parallax.AnimationManual
//	opts.Animation.Props = map[string]parallax.Prop{
//		"opacity": {From: 0, To: 1},
//		"top":     {From: 40, To: 0, Suffix: "px"},
//	}
//	if err := p.Init(elements, opts); err != nil {
//		return err
//	}
//
//	// in the host's event loop
//	p.OnScroll()
//	p.OnResize()
//
// # Animation types
//
// An auto asset animates once, over Options.Animation.Speed seconds, as soon
// as the bottom of the viewport reaches its range. A manual asset maps the
// viewport bottom's position inside the range directly to the animation
// rate; unidirectional manual assets never move backwards and complete at the
// end of the range, bidirectional ones follow the scroll both ways.
//
// # Queues
//
// Auto assets that share Options.QueueName animate one at a time in
// registration order. A member starts once its predecessor's rate has
// reached Options.Animation.Proceed.
//
// # Hosts
//
// Package headless provides a deterministic host for tests and simulation,
// ebitenhost an interactive host on [Ebitengine], and termhost one on
// [tcell].
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
package parallax
