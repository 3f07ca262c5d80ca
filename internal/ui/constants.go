package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconError  = "❌"
	IconSeries = "📺"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	ImageMinWidth    float32 = 280
	ImageMinHeight   float32 = 280
	DialogMinWidth   float32 = 420
	DialogMinHeight  float32 = 360
	WindowWidth      float32 = 480
	WindowHeight     float32 = 760
	LogoSize         float32 = 32
	AvatarSize       float32 = 96
	MobileButtonSize float32 = 48
)

// Toast notification behavior
const (
	ToastAutoHide = 3 * time.Second
)

// timeAfter schedules the toast hide
var timeAfter = time.After
