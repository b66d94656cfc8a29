package subscription

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/aamritt0/FermiToday-pwa/core"
)

type (
	// Keys are the client key material of a push subscription, as handed
	// out by the platform push service.
	Keys struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	}

	// Record is a platform push subscription. The endpoint doubles as the
	// identity of the subscription on the school backend.
	Record struct {
		Endpoint string `json:"endpoint"`
		Keys     Keys   `json:"keys"`
	}

	// Preferences select which variations get delivered and how.
	Preferences struct {
		Section         string `json:"section,omitempty" validate:"omitempty,classcode"`
		Professor       string `json:"professor,omitempty" validate:"omitempty,max=49"`
		DigestEnabled   bool   `json:"digestEnabled"`
		DigestTime      string `json:"digestTime" validate:"required,clock"`
		RealtimeEnabled bool   `json:"realtimeEnabled"`
	}
)

// Clean normalizes the identifier fields the way the classifier expects them.
func (p *Preferences) Clean() {
	p.Section = core.CleanString(p.Section, true /* upper */)
	p.Professor = core.CleanString(p.Professor, true /* upper */)
	if p.DigestTime == "" {
		p.DigestTime = core.Conf.GetString("digestTime")
	}
}

func (p *Preferences) Validate(validate *validator.Validate, translator ut.Translator) error {
	p.Clean()
	return validate.Struct(p)
}
