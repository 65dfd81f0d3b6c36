package tui

import "github.com/mmcdole/bitreel/internal/domain"

// ChannelObserver adapts domain.ProgressObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- domain.ProgressUpdate
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnProgress sends progress to the channel (non-blocking if full).
func (o *ChannelObserver) OnProgress(update domain.ProgressUpdate) {
	select {
	case o.ch <- update:
	default: // The UI only needs the latest update; drop when it lags
	}
}

// channelWarnings forwards token warnings without blocking the codec
func channelWarnings(ch chan<- domain.TokenWarning) domain.WarningFunc {
	return func(w domain.TokenWarning) {
		select {
		case ch <- w:
		default:
		}
	}
}
