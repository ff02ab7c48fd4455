// Package stealth spaces browser actions the way a person would: randomized
// pauses between actions, curved mouse paths, rhythm in typing and
// scrolling. These delays are rate limiting against anti-automation
// detection, not waits for I/O.
package stealth

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// SleepRandom sleeps for a uniform random duration between min and max
// milliseconds.
func SleepRandom(minMs, maxMs int) {
	if maxMs < minMs {
		maxMs = minMs
	}
	time.Sleep(time.Duration(minMs+rand.Intn(maxMs-minMs+1)) * time.Millisecond)
}

// SleepGaussian sleeps around meanMs with the given spread, clamped to
// mean +/- 3 stddev. Most pauses cluster near the mean.
func SleepGaussian(meanMs, stdDevMs int) {
	u1 := rand.Float64()
	u2 := rand.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	delay := int(float64(meanMs) + z*float64(stdDevMs))
	if min := meanMs - 3*stdDevMs; delay < min {
		delay = min
	}
	if max := meanMs + 3*stdDevMs; delay > max {
		delay = max
	}
	if delay > 0 {
		time.Sleep(time.Duration(delay) * time.Millisecond)
	}
}

func ThinkTime() { SleepGaussian(1400, 600) }

// MoveMouseHumanLike moves the pointer along a jittered bezier curve.
func MoveMouseHumanLike(p *rod.Page, fromX, fromY, toX, toY int) {
	dist := math.Hypot(float64(toX-fromX), float64(toY-fromY))
	steps := 25 + int(dist/30) + rand.Intn(10)
	cx := fromX + (toX-fromX)/2 + rand.Intn(80) - 40
	cy := fromY + (toY-fromY)/2 + rand.Intn(80) - 40
	for i := 0; i <= steps; i++ {
		t := easeInOutCubic(float64(i) / float64(steps))
		x := bezier(float64(fromX), float64(cx), float64(toX), t) + float64(rand.Intn(3)-1)
		y := bezier(float64(fromY), float64(cy), float64(toY), t) + float64(rand.Intn(3)-1)
		_ = proto.InputDispatchMouseEvent{
			Type: proto.InputDispatchMouseEventTypeMouseMoved,
			X:    x,
			Y:    y,
		}.Call(p)
		time.Sleep(time.Duration(6+rand.Intn(8)) * time.Millisecond)
	}
}

// ClickHumanLike scrolls the element into view, moves to a random point
// inside it, and clicks with a human press/release gap.
func ClickHumanLike(p *rod.Page, el *rod.Element) error {
	_ = el.ScrollIntoView()
	SleepGaussian(300, 150)

	shape, err := el.Shape()
	if err != nil || len(shape.Quads) == 0 {
		return el.Click(proto.InputMouseButtonLeft, 1)
	}
	box := shape.Box()
	targetX := int(box.X + box.Width*(0.3+rand.Float64()*0.4))
	targetY := int(box.Y + box.Height*(0.3+rand.Float64()*0.4))

	fromX, fromY := 700, 450
	if dims, err := p.Eval(`() => ({width: window.innerWidth, height: window.innerHeight})`); err == nil {
		if w := dims.Value.Get("width").Int(); w > 0 {
			fromX = w / 2
		}
		if h := dims.Value.Get("height").Int(); h > 0 {
			fromY = h / 2
		}
	}
	MoveMouseHumanLike(p, fromX, fromY, targetX, targetY)
	SleepRandom(50, 150)

	for _, evt := range []proto.InputDispatchMouseEventType{
		proto.InputDispatchMouseEventTypeMousePressed,
		proto.InputDispatchMouseEventTypeMouseReleased,
	} {
		_ = proto.InputDispatchMouseEvent{
			Type:       evt,
			X:          float64(targetX),
			Y:          float64(targetY),
			Button:     proto.InputMouseButtonLeft,
			ClickCount: 1,
		}.Call(p)
		SleepRandom(30, 90)
	}
	return nil
}

// TypeHumanLike types text character by character with a realistic rhythm:
// slower at the start, pauses at punctuation and after spaces.
func TypeHumanLike(el *rod.Element, text string) error {
	for i, r := range text {
		if err := el.Input(string(r)); err != nil {
			return err
		}
		base := 25
		switch {
		case i < 10:
			base = 40
		case r == ' ' || r == ',' || r == '.':
			base = 60
		case i > 0 && text[i-1] == ' ':
			base = 35
		}
		SleepGaussian(base, base/3)
	}
	return nil
}

// ScrollHumanLike scrolls towards the bottom of the page in uneven bursts.
func ScrollHumanLike(p *rod.Page) {
	bursts := 3 + rand.Intn(3)
	for i := 0; i < bursts; i++ {
		dy := 300 + rand.Intn(400)
		_, _ = p.Eval(`(dy) => window.scrollBy(0, dy)`, dy)
		SleepRandom(250, 700)
	}
	_, _ = p.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func bezier(p0, p1, p2, t float64) float64 {
	return math.Pow(1-t, 2)*p0 + 2*(1-t)*t*p1 + math.Pow(t, 2)*p2
}
