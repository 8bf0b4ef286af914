package main

import (
	"time"

	"golang.org/x/time/rate"

	"treasureisland/screen"
)

const (
	cameraStep     = 10.0
	cameraInterval = 25 * time.Millisecond
)

// camera is the board origin in screen pixels.
type camera struct {
	x, y    float64
	limiter *rate.Limiter
}

func newCamera() *camera {
	return &camera{limiter: rate.NewLimiter(rate.Every(cameraInterval), 1)}
}

// pan moves the origin one step in direction d, at most once per
// cameraInterval. It reports whether the camera moved.
func (c *camera) pan(d screen.Direction, now time.Time) bool {
	if d == screen.DirNone || !c.limiter.AllowN(now, 1) {
		return false
	}
	switch d {
	case screen.DirUp:
		c.y += cameraStep
	case screen.DirDown:
		c.y -= cameraStep
	case screen.DirLeft:
		c.x += cameraStep
	case screen.DirRight:
		c.x -= cameraStep
	}
	return true
}
