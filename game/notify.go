package game

import (
	"fmt"
	"log/slog"
)

// Level is the tone of a notification.
type Level uint8

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

var levelNames = [...]string{"info", "success", "warning", "error"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", l)
}

// Notification is a one-line message for the player.
type Notification struct {
	Level   Level
	Message string
	Time    float64 // game time
}

// maxNotifications bounds the queue when nobody drains it.
const maxNotifications = 64

func (s *Session) notify(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if len(s.notes) >= maxNotifications {
		s.notes = s.notes[1:]
	}
	s.notes = append(s.notes, Notification{Level: level, Message: msg, Time: s.clock.Time})

	switch level {
	case LevelError:
		// Rejections are expected player input, not faults.
		s.logger.Debug("rejected", "msg", msg)
	case LevelWarning:
		s.logger.Warn(msg, "time", s.clock.Time)
	default:
		s.logger.Info(msg, "time", s.clock.Time)
	}
}

// reject queues an error notification and returns err unchanged.
func (s *Session) reject(err error, format string, args ...any) error {
	s.notify(LevelError, format, args...)
	return err
}

// Notifications drains the queued notifications, oldest first.
func (s *Session) Notifications() []Notification {
	out := s.notes
	s.notes = nil
	return out
}

// LogValue implements slog.LogValuer.
func (s *Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("time", s.clock.Time),
		slog.Int("day", s.clock.Day),
		slog.String("weather", s.wx.Kind.String()),
		slog.Int("plants", s.garden.count()),
		slog.Float64("money", s.inv.Money),
		slog.Int("seeds", len(s.seeds)),
		slog.Int("unlocked", s.unlocked.Len()),
	)
}
