package mouse

import (
	"image"
	"reflect"
	"testing"
)

func newTestController() (*Controller, *RecordingDriver) {
	rec := NewRecordingDriver()
	return NewController(rec, Screen{Width: 1920, Height: 1080}), rec
}

func TestController_Target(t *testing.T) {
	c, _ := newTestController()

	tests := []struct {
		name string
		x, y int
		want image.Point
	}{
		{name: "low margin maps to origin", x: 20, y: 20, want: image.Point{X: 0, Y: 0}},
		{name: "inside low margin clamps to origin", x: 5, y: 0, want: image.Point{X: 0, Y: 0}},
		{name: "high margin clamps inside screen", x: 620, y: 460, want: image.Point{X: 1900, Y: 1060}},
		{name: "centre", x: 320, y: 240, want: image.Point{X: 960, Y: 648}},
		{name: "vertical boost saturates early", x: 20, y: 400, want: image.Point{X: 0, Y: 1060}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Target(tt.x, tt.y, 640, 480)
			if got != tt.want {
				t.Errorf("Target(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestController_Target_Sensitivity(t *testing.T) {
	c, _ := newTestController()
	c.Sensitivity = 0.5
	c.VerticalBoost = 0

	got := c.Target(620, 460, 640, 480)
	want := image.Point{X: 960, Y: 540}
	if got != want {
		t.Errorf("Target() = %v, want %v", got, want)
	}
}

func TestController_Move(t *testing.T) {
	c, rec := newTestController()

	p := c.Move(620, 20, 640, 480)

	if p != (image.Point{X: 1900, Y: 0}) {
		t.Errorf("Move() = %v, want (1900,0)", p)
	}
	want := []Call{{Op: "move", X: 1900, Y: 0}}
	if got := rec.Calls(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestController_Clicks(t *testing.T) {
	tests := []struct {
		name string
		do   func(c *Controller)
		want []Call
	}{
		{
			name: "left click presses and releases",
			do:   (*Controller).LeftClick,
			want: []Call{{Op: "press", Button: Left}, {Op: "release", Button: Left}},
		},
		{
			name: "right click clicks once",
			do:   (*Controller).RightClick,
			want: []Call{{Op: "click", Button: Right, Count: 1}},
		},
		{
			name: "double click clicks left twice",
			do:   (*Controller).DoubleClick,
			want: []Call{{Op: "click", Button: Left, Count: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestController()
			tt.do(c)
			if got := rec.Calls(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("calls = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordingDriver(t *testing.T) {
	rec := NewRecordingDriver()
	rec.MoveTo(1, 2)
	rec.Click(Right, 1)

	calls := rec.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0].String() != "move(1,2)" || calls[1].String() != "click(right,1)" {
		t.Errorf("unexpected calls: %v", calls)
	}

	rec.Reset()
	if len(rec.Calls()) != 0 {
		t.Error("Reset should clear calls")
	}
}

func TestRobotgoDriver_ImplementsDriver(t *testing.T) {
	var _ Driver = (*RobotgoDriver)(nil)
	var _ Driver = (*RecordingDriver)(nil)
}

func TestPrimaryScreen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires a display")
	}

	s, err := PrimaryScreen()
	if err != nil {
		t.Skipf("no display available: %v", err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		t.Errorf("PrimaryScreen() = %+v, want positive dimensions", s)
	}
}
