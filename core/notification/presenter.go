package notification

import "strings"

// MessageNotificationClicked is the worker-to-page message type carrying
// click data back into a running client for deep-link routing.
const MessageNotificationClicked = "NOTIFICATION_CLICKED"

type (
	// Client is an open application window as seen from the worker.
	Client struct {
		ID  string
		URL string
	}

	ClickMessage struct {
		Type string `json:"type"`
		Data Data   `json:"data"`
	}

	// ClickResult says what to do after a notification click: focus an
	// existing client and post it the click message, or open a new window.
	ClickResult struct {
		FocusClientID string
		Message       *ClickMessage
		OpenURL       string
	}
)

// ResolveClick picks the client to route a notification click to. The first
// open client within the worker's registration scope gets focused and
// receives the click message; with no such client a new window is opened at
// the notification's target URL ("/" when the payload named none).
func ResolveClick(clients []Client, scope string, data Data) ClickResult {
	for _, c := range clients {
		if strings.HasPrefix(c.URL, scope) {
			return ClickResult{
				FocusClientID: c.ID,
				Message:       &ClickMessage{Type: MessageNotificationClicked, Data: data},
			}
		}
	}
	url := data.URL
	if url == "" {
		url = "/"
	}
	return ClickResult{OpenURL: url}
}
