package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestAngle(t *testing.T) {
	tests := []struct {
		name string
		a    Point
		b    Point
		c    Point
		want float64
	}{
		{
			name: "right angle counter clockwise",
			a:    Point{X: 0, Y: 1},
			b:    Point{X: 0, Y: 0},
			c:    Point{X: 1, Y: 0},
			want: 90,
		},
		{
			name: "right angle clockwise wraps",
			a:    Point{X: 1, Y: 0},
			b:    Point{X: 0, Y: 0},
			c:    Point{X: 0, Y: 1},
			want: 270,
		},
		{
			name: "straight line",
			a:    Point{X: -1, Y: 0},
			b:    Point{X: 0, Y: 0},
			c:    Point{X: 1, Y: 0},
			want: 180,
		},
		{
			name: "same ray",
			a:    Point{X: 0.5, Y: 0.2},
			b:    Point{X: 0.5, Y: 0.5},
			c:    Point{X: 0.5, Y: 0.3},
			want: 0,
		},
		{
			name: "offset vertex",
			a:    Point{X: 0.6, Y: 0.5},
			b:    Point{X: 0.5, Y: 0.5},
			c:    Point{X: 0.5, Y: 0.6},
			want: 270,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Angle(tt.a, tt.b, tt.c)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Angle() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAngle_Range(t *testing.T) {
	b := Point{X: 0.5, Y: 0.5}
	for i := 0; i < 36; i++ {
		for j := 0; j < 36; j++ {
			ta := float64(i) * math.Pi / 18
			tc := float64(j) * math.Pi / 18
			a := Point{X: b.X + 0.1*math.Cos(ta), Y: b.Y + 0.1*math.Sin(ta)}
			c := Point{X: b.X + 0.2*math.Cos(tc), Y: b.Y + 0.2*math.Sin(tc)}

			got := Angle(a, b, c)
			if got < 0 || got >= 360 {
				t.Fatalf("Angle() = %f outside [0, 360) for i=%d j=%d", got, i, j)
			}
		}
	}
}

func TestAngle_SwapIsComplement(t *testing.T) {
	b := Point{X: 0.4, Y: 0.6}
	cases := [][2]Point{
		{{X: 0.4, Y: 0.3}, {X: 0.7, Y: 0.6}},
		{{X: 0.1, Y: 0.9}, {X: 0.5, Y: 0.8}},
		{{X: 0.45, Y: 0.2}, {X: 0.35, Y: 0.95}},
	}

	for _, tc := range cases {
		a, c := tc[0], tc[1]
		forward := Angle(a, b, c)
		backward := Angle(c, b, a)
		if forward == 0 {
			continue
		}
		if math.Abs(backward-(360-forward)) > epsilon {
			t.Errorf("Angle(c,b,a) = %f, want %f", backward, 360-forward)
		}
	}
}

func TestAngle_NaNPropagates(t *testing.T) {
	nan := Point{X: math.NaN(), Y: 0}
	got := Angle(nan, Point{}, Point{X: 1})
	if !math.IsNaN(got) {
		t.Errorf("Angle() = %f, want NaN", got)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		q    Point
		want float64
	}{
		{name: "identical points", p: Point{X: 0.3, Y: 0.3}, q: Point{X: 0.3, Y: 0.3}, want: 0},
		{name: "horizontal", p: Point{X: 0.1, Y: 0.5}, q: Point{X: 0.15, Y: 0.5}, want: 50},
		{name: "pythagorean", p: Point{X: 0, Y: 0}, q: Point{X: 0.3, Y: 0.4}, want: 500},
		{name: "beyond unit clamps", p: Point{X: 0, Y: 0}, q: Point{X: 1, Y: 1}, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.p, tt.q)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Distance() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	points := []Point{
		{X: 0.12, Y: 0.87},
		{X: 0.5, Y: 0.5},
		{X: 0.91, Y: 0.03},
	}

	for _, p := range points {
		for _, q := range points {
			if Distance(p, q) != Distance(q, p) {
				t.Errorf("Distance(%v, %v) != Distance(%v, %v)", p, q, q, p)
			}
		}
	}
}

func TestInterp(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "below range", x: 0, want: 0},
		{name: "low edge", x: 20, want: 0},
		{name: "midpoint", x: 320, want: 960},
		{name: "high edge", x: 620, want: 1920},
		{name: "above range", x: 640, want: 1920},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interp(tt.x, 20, 620, 0, 1920)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Interp(%f) = %f, want %f", tt.x, got, tt.want)
			}
		})
	}

	t.Run("empty domain", func(t *testing.T) {
		if got := Interp(5, 3, 3, 7, 9); got != 7 {
			t.Errorf("Interp() = %f, want 7", got)
		}
	})
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("Clamp(-5) = %d, want 0", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp(15) = %d, want 10", got)
	}
	if got := Clamp(7, 0, 10); got != 7 {
		t.Errorf("Clamp(7) = %d, want 7", got)
	}
}
