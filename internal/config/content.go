package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xavierca1/gym-leadbot/internal/entity"
)

//go:embed content.yaml
var defaultContent []byte

// LoadContent parses the content library at path, or the embedded default
// when path is empty.
func LoadContent(path string) (*entity.Content, error) {
	raw := defaultContent
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content %s: %w", path, err)
		}
		raw = b
	}
	return ParseContent(raw)
}

func ParseContent(raw []byte) (*entity.Content, error) {
	var c entity.Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	expand(&c)
	if err := ValidateContent(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func ValidateContent(c *entity.Content) error {
	if strings.TrimSpace(c.BusinessName) == "" {
		return fmt.Errorf("content: business_name is required")
	}
	if strings.TrimSpace(c.FeesText) == "" {
		return fmt.Errorf("content: fees_text is required")
	}
	if err := validateOptions("main_menu", c.MainMenu); err != nil {
		return err
	}
	if err := validateOptions("more_options", c.MoreOptions); err != nil {
		return err
	}
	return validateOptions("visit_options", c.VisitOptions)
}

// validateOptions enforces the WhatsApp quick-reply limit of 1 to 3 buttons.
func validateOptions(field string, opts []entity.ButtonOption) error {
	if len(opts) == 0 || len(opts) > 3 {
		return fmt.Errorf("content: %s needs 1 to 3 options, got %d", field, len(opts))
	}
	return nil
}

// expand substitutes {business}, {instagram} and {review_link} in texts.
func expand(c *entity.Content) {
	r := strings.NewReplacer(
		"{business}", c.BusinessName,
		"{instagram}", c.InstagramLink,
		"{review_link}", c.ReviewLink,
	)
	for _, s := range []*string{&c.WelcomeText, &c.FeesText, &c.TimingsText, &c.LocationText, &c.ReviewText} {
		*s = r.Replace(*s)
	}
}
