package worker

import (
	"github.com/pkg/errors"

	"github.com/aamritt0/FermiToday-pwa/core"
	"github.com/aamritt0/FermiToday-pwa/core/notification"
)

func handleInstall(_ Event, ctx *Context) ([]Effect, error) {
	return []Effect{
		PrecacheShell{Assets: ctx.ShellAssets},
		SkipWaiting{},
	}, nil
}

func handleActivate(_ Event, _ *Context) ([]Effect, error) {
	return []Effect{
		CleanStaleCaches{},
		ClaimClients{},
	}, nil
}

func handleFetch(ev Event, ctx *Context) ([]Effect, error) {
	if ev.Request == nil {
		return nil, errors.New("fetch event without request")
	}
	return []Effect{
		FetchRoute{Request: ev.Request, Policy: ctx.Route(ev.Request)},
	}, nil
}

func handleMessage(ev Event, _ *Context) ([]Effect, error) {
	if ev.Message == nil {
		return nil, nil
	}
	switch ev.Message.Type {
	case MessageSkipWaiting:
		return []Effect{SkipWaiting{}}, nil
	case MessageGetVersion:
		if ev.Message.Reply == nil {
			return nil, errors.New("GET_VERSION message without reply channel")
		}
		return []Effect{Reply{To: ev.Message.Reply}}, nil
	}
	return nil, nil // unknown message types are ignored
}

func handlePush(ev Event, ctx *Context) ([]Effect, error) {
	deliveredAt := ev.DeliveredAt
	if deliveredAt.IsZero() {
		deliveredAt = ctx.Now()
	}
	payload, err := notification.ParsePayload(ev.Payload, deliveredAt)
	if err != nil && err != core.ErrParsePayloadFailed {
		return nil, err
	}
	// a malformed payload already degraded to a plain-text body; show it
	return []Effect{ShowNotification{Payload: payload}}, nil
}

func handleNotificationClick(ev Event, ctx *Context) ([]Effect, error) {
	if ev.Clicked == nil {
		return nil, errors.New("notificationclick event without notification")
	}
	effects := []Effect{CloseNotification{Tag: ev.Clicked.Tag}}

	res := notification.ResolveClick(ev.Clicked.Clients, ctx.Scope, ev.Clicked.Data)
	if res.FocusClientID != "" {
		effects = append(effects,
			FocusClient{ClientID: res.FocusClientID},
			PostMessage{ClientID: res.FocusClientID, Message: res.Message},
		)
	} else {
		effects = append(effects, OpenWindow{URL: res.OpenURL})
	}
	return effects, nil
}

func handleSubscriptionChange(_ Event, _ *Context) ([]Effect, error) {
	return []Effect{RecoverSubscription{}}, nil
}
