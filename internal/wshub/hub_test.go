package wshub

import (
	"encoding/json"
	"image/color"
	"testing"
	"time"

	"shootingrange/internal/targets"
)

func TestRegisterAndCount(t *testing.T) {
	h := NewHub()

	c1 := &Client{SessionID: "s1", Send: make(chan []byte, 16)}
	c2 := &Client{SessionID: "s2", Send: make(chan []byte, 16)}

	h.Register(c1)
	h.Register(c2)

	if h.Count() != 2 {
		t.Errorf("Count() = %d, want 2", h.Count())
	}
	if h.Get("s1") != c1 {
		t.Error("Get(s1) should return c1")
	}
	if h.Get("missing") != nil {
		t.Error("Get() should return nil for unknown session")
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	h := NewHub()

	c1 := &Client{SessionID: "s1", Send: make(chan []byte, 16)}
	h.Register(c1)

	h.Unregister("s1")

	// c1's Send channel should be closed
	if _, ok := <-c1.Send; ok {
		t.Fatal("c1.Send should be closed after Unregister")
	}
	if h.Count() != 0 {
		t.Errorf("Count() = %d, want 0", h.Count())
	}

	// Second unregister must not panic on the closed channel.
	h.Unregister("s1")
}

func TestSendMessage(t *testing.T) {
	c := &Client{SessionID: "s1", Send: make(chan []byte, 16)}

	c.SendMessage(ServerMessage{Type: "score", Score: 0})

	select {
	case data := <-c.Send:
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if raw["t"] != "score" {
			t.Errorf("t = %v, want score", raw["t"])
		}
		if _, ok := raw["s"]; !ok {
			t.Error("zero score should still be encoded")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("message not queued")
	}
}

func TestSendMessage_DropsWhenFull(t *testing.T) {
	c := &Client{SessionID: "s1", Send: make(chan []byte, 1)}

	c.SendMessage(ServerMessage{Type: "score", Score: 10})

	done := make(chan bool)
	go func() {
		c.SendMessage(ServerMessage{Type: "score", Score: 20})
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("SendMessage blocked on full channel")
	}

	var got ServerMessage
	if err := json.Unmarshal(<-c.Send, &got); err != nil {
		t.Fatal(err)
	}
	if got.Score != 10 {
		t.Errorf("kept score = %d, want the first message (10)", got.Score)
	}
}

func TestFrameSurface(t *testing.T) {
	c := &Client{SessionID: "s1", Send: make(chan []byte, 16)}
	s := NewFrameSurface(c)

	s.Clear(targets.Viewport{Width: 800, Height: 600})
	s.FillCircle(100, 120, 15, color.RGBA{R: 0xff, A: 0xff})
	s.FillCircle(300, 320, 25, color.RGBA{R: 0xff, A: 0xff})
	s.Present(30)

	var got ServerMessage
	if err := json.Unmarshal(<-c.Send, &got); err != nil {
		t.Fatal(err)
	}
	if got.Type != "frame" || got.Width != 800 || got.Height != 600 {
		t.Errorf("frame header = %+v", got)
	}
	if got.Score != 30 || got.Fill != "#ff0000" {
		t.Errorf("score=%d fill=%q, want 30 and #ff0000", got.Score, got.Fill)
	}
	if len(got.Circles) != 2 || got.Circles[1] != (Circle{X: 300, Y: 320, R: 25}) {
		t.Errorf("circles = %+v", got.Circles)
	}

	// The next frame starts empty.
	s.Clear(targets.Viewport{Width: 400, Height: 300})
	s.Present(30)

	var next ServerMessage
	if err := json.Unmarshal(<-c.Send, &next); err != nil {
		t.Fatal(err)
	}
	if len(next.Circles) != 0 || next.Width != 400 {
		t.Errorf("second frame = %+v, want empty 400-wide frame", next)
	}
}
