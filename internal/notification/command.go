// Package notification rewrites desktop notifications on behalf of a terminal
// emulator's notification hook. The host hands over one Command per incoming
// notification; a Filter may rewrite its text fields and decides whether the
// notification is suppressed.
package notification

// Command is one incoming desktop notification as delivered by the host.
// Title, Body and ApplicationName may be rewritten; NotificationTypes is read-only.
type Command struct {
	Title             string   `json:"title"`
	Body              string   `json:"body"`
	ApplicationName   string   `json:"application_name"`
	NotificationTypes []string `json:"notification_types,omitempty"`
}

// Result is what the notify hook writes back to the host.
type Result struct {
	Suppress     bool    `json:"suppress"`
	Notification Command `json:"notification"`
}

func (c *Command) hasTypes(types []string) bool {
	for _, want := range types {
		found := false
		for _, have := range c.NotificationTypes {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
