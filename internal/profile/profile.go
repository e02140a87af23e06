// Package profile defines the landing page data record and parses it from
// the YAML data file served at /data.yaml.
package profile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Identity is the display identity of the page owner.
type Identity struct {
	Name   string `yaml:"name" json:"name" validate:"required"`
	Title  string `yaml:"title" json:"title" validate:"required"`
	Avatar string `yaml:"avatar,omitempty" json:"avatar,omitempty"`
}

// Subtitle is one rotating tagline. Link is optional; an empty Link means
// the tagline renders as plain text.
type Subtitle struct {
	Text string `yaml:"text" json:"text" validate:"required"`
	Link string `yaml:"link,omitempty" json:"link,omitempty"`
}

// HasLink reports whether the tagline should render as an outbound link.
func (s Subtitle) HasLink() bool {
	return s.Link != ""
}

// UnmarshalYAML accepts both the mapping form {text, link} and a bare
// string, which is shorthand for {text: <string>}.
func (s *Subtitle) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.Text = value.Value
		s.Link = ""
		return nil
	}

	type plain Subtitle
	var p plain
	if err := value.Decode(&p); err != nil {
		return fmt.Errorf("subtitle at line %d: %w", value.Line, err)
	}
	*s = Subtitle(p)
	return nil
}

// CTA is the single primary call-to-action.
type CTA struct {
	Text string `yaml:"text" json:"text" validate:"required"`
	URL  string `yaml:"url" json:"url" validate:"required"`
}

type SocialLink struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	URL   string `yaml:"url" json:"url" validate:"required"`
	Icon  string `yaml:"icon" json:"icon"`
	Color string `yaml:"color" json:"color"`
}

type PaymentAddress struct {
	Name    string `yaml:"name" json:"name" validate:"required"`
	Address string `yaml:"address" json:"address" validate:"required"`
	Icon    string `yaml:"icon" json:"icon"`
	Color   string `yaml:"color" json:"color"`
}

// Footer overrides the default attribution link.
type Footer struct {
	Text string `yaml:"text" json:"text" validate:"required"`
	URL  string `yaml:"url" json:"url" validate:"required"`
}

// Profile is the whole data file. It is never mutated after Parse returns.
type Profile struct {
	Identity         Identity         `yaml:"profile" json:"profile"`
	Subtitles        []Subtitle       `yaml:"subtitles" json:"subtitles" validate:"required,dive"`
	CTA              *CTA             `yaml:"cta,omitempty" json:"cta,omitempty" validate:"omitempty"`
	SocialLinks      []SocialLink     `yaml:"socialLinks" json:"socialLinks" validate:"omitempty,unique=Name,dive"`
	PaymentAddresses []PaymentAddress `yaml:"paymentAddresses,omitempty" json:"paymentAddresses,omitempty" validate:"omitempty,unique=Name,dive"`
	Footer           *Footer          `yaml:"footer,omitempty" json:"footer,omitempty" validate:"omitempty"`
}

// HasCTA reports whether the call-to-action element should be rendered.
func (p *Profile) HasCTA() bool {
	return p.CTA != nil
}

// HasPayments reports whether there is anything to show in the payment section.
func (p *Profile) HasPayments() bool {
	return len(p.PaymentAddresses) > 0
}

// PaymentAddress returns the address entry with the given name.
func (p *Profile) PaymentAddress(name string) (PaymentAddress, bool) {
	for _, a := range p.PaymentAddresses {
		if a.Name == name {
			return a, true
		}
	}
	return PaymentAddress{}, false
}
