package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// DesktopNotifier shows notifications as desktop toasts.
type DesktopNotifier struct {
	appName string
	icon    string
	send    func(title, message, icon string) error
}

// NewDesktopNotifier returns a DesktopNotifier titled appName. icon may be
// empty or a path to an image file.
func NewDesktopNotifier(appName, icon string) *DesktopNotifier {
	return &DesktopNotifier{
		appName: appName,
		icon:    icon,
		send: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

// Notify implements Notifier.
func (n *DesktopNotifier) Notify(_ context.Context, note Notification) error {
	title := note.Title
	if title == "" {
		title = n.appName
	}
	return n.send(title, note.Message, n.icon)
}
