package ui

import (
	"math"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureTap GestureType = iota
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
	GestureLongPress
)

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
)

// GestureHandler turns touch down/up pairs into gestures
type GestureHandler struct {
	onGesture func(GestureType)
	now       func() time.Time

	touchStartTime time.Time
	touchStartPos  fyne.Position

	swipeThreshold    float32
	longPressDuration time.Duration
}

// NewGestureHandler creates a new gesture handler
func NewGestureHandler(onGesture func(GestureType)) *GestureHandler {
	return &GestureHandler{
		onGesture:         onGesture,
		now:               time.Now,
		swipeThreshold:    DefaultSwipeThreshold,
		longPressDuration: DefaultLongPressDuration,
	}
}

// TouchDown handles touch down events for gesture detection
func (gh *GestureHandler) TouchDown(event *mobile.TouchEvent) {
	gh.touchStartTime = gh.now()
	gh.touchStartPos = event.Position
}

// TouchUp handles touch up events for gesture detection
func (gh *GestureHandler) TouchUp(event *mobile.TouchEvent) {
	if gh.touchStartTime.IsZero() {
		return
	}
	duration := gh.now().Sub(gh.touchStartTime)
	gh.touchStartTime = time.Time{}

	dx := event.Position.X - gh.touchStartPos.X
	dy := event.Position.Y - gh.touchStartPos.Y
	distance := float32(math.Hypot(float64(dx), float64(dy)))

	switch {
	case distance >= gh.swipeThreshold:
		gh.triggerGesture(swipeDirection(dx, dy))
	case duration >= gh.longPressDuration:
		gh.triggerGesture(GestureLongPress)
	default:
		gh.triggerGesture(GestureTap)
	}
}

// TouchCancel handles touch cancel events
func (gh *GestureHandler) TouchCancel(*mobile.TouchEvent) {
	gh.touchStartTime = time.Time{}
}

// swipeDirection picks the dominant axis of a movement
func swipeDirection(dx, dy float32) GestureType {
	if math.Abs(float64(dx)) > math.Abs(float64(dy)) {
		if dx > 0 {
			return GestureSwipeRight
		}
		return GestureSwipeLeft
	}
	if dy > 0 {
		return GestureSwipeDown
	}
	return GestureSwipeUp
}

func (gh *GestureHandler) triggerGesture(gesture GestureType) {
	if gh.onGesture != nil {
		gh.onGesture(gesture)
	}
}

// PullToRefresh wraps a list and reloads it on a downward swipe
type PullToRefresh struct {
	widget.BaseWidget

	content        fyne.CanvasObject
	gestureHandler *GestureHandler
	refreshFunc    func()
	refreshing     atomic.Bool
}

// NewPullToRefresh creates a new pull-to-refresh wrapper. refreshFunc runs on
// its own goroutine and a new pull is ignored until it returns.
func NewPullToRefresh(content fyne.CanvasObject, refreshFunc func()) *PullToRefresh {
	ptr := &PullToRefresh{
		content:     content,
		refreshFunc: refreshFunc,
	}
	ptr.gestureHandler = NewGestureHandler(ptr.handleGesture)
	ptr.ExtendBaseWidget(ptr)
	return ptr
}

// CreateRenderer implements fyne.Widget
func (ptr *PullToRefresh) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ptr.content)
}

func (ptr *PullToRefresh) handleGesture(gesture GestureType) {
	if gesture == GestureSwipeDown {
		ptr.triggerRefresh()
	}
}

func (ptr *PullToRefresh) triggerRefresh() {
	if ptr.refreshFunc == nil || !ptr.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer ptr.refreshing.Store(false)
		ptr.refreshFunc()
	}()
}

// TouchDown handles touch down events
func (ptr *PullToRefresh) TouchDown(event *mobile.TouchEvent) {
	ptr.gestureHandler.TouchDown(event)
}

// TouchUp handles touch up events
func (ptr *PullToRefresh) TouchUp(event *mobile.TouchEvent) {
	ptr.gestureHandler.TouchUp(event)
}

// TouchCancel handles touch cancel events
func (ptr *PullToRefresh) TouchCancel(event *mobile.TouchEvent) {
	ptr.gestureHandler.TouchCancel(event)
}
