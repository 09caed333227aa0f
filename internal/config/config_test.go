package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SESSION_BACKEND", "PORT", "SESSION_TTL", "CORS_ORIGINS", "TIMEZONE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "https://api.gupshup.io/wa/api/v1", cfg.Gupshup.BaseURL)
	assert.Equal(t, "09d6c1db-a107-4621-8543-4a7a608c9919", cfg.ReminderTemplateID)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadRejectsRedisWithoutURL(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsBadTimezone(t *testing.T) {
	cfg := Config{SessionBackend: "memory", SessionTTL: time.Hour, Timezone: "Mars/Olympus"}
	assert.Error(t, cfg.Validate())
}

func TestEmbeddedContent(t *testing.T) {
	c, err := LoadContent("")
	require.NoError(t, err)

	assert.Equal(t, "Lifestyle Shaurya Fitness Club", c.BusinessName)
	assert.Contains(t, c.WelcomeText, "Welcome to *Lifestyle Shaurya Fitness Club*")
	assert.Contains(t, c.ReviewText, c.ReviewLink)
	assert.NotContains(t, c.LocationText, "{business}")
	assert.Len(t, c.MainMenu, 3)
	assert.Equal(t, "TRIAL", c.MainMenu[1].PostbackText)
	assert.Equal(t, "visit_other", c.VisitOptions[2].PostbackText)
	assert.Len(t, c.Transformations.Images, 4)
	assert.Len(t, c.GymPhotos.Images, 6)
}

func TestLoadContentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	doc := `
business_name: Iron Den
fees_text: "{business} costs 500"
main_menu:
  - {title: Fees, postback: FEES}
more_options:
  - {title: Location, postback: LOCATION}
visit_options:
  - {title: Today, postback: visit_today}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadContent(path)
	require.NoError(t, err)
	assert.Equal(t, "Iron Den costs 500", c.FeesText)
}

func TestParseContentRequiresBusinessName(t *testing.T) {
	_, err := ParseContent([]byte("fees_text: x\nmain_menu: [{title: a, postback: b}]"))
	assert.Error(t, err)
}

func TestParseContentRequiresQuickReplyOptions(t *testing.T) {
	const (
		base  = "business_name: Iron Den\nfees_text: x\nmain_menu: [{title: a, postback: b}]\n"
		more  = "more_options: [{title: Location, postback: LOCATION}]\n"
		visit = "visit_options: [{title: Today, postback: visit_today}]\n"
		four  = "visit_options: [{title: a, postback: a}, {title: b, postback: b}, {title: c, postback: c}, {title: d, postback: d}]\n"
	)
	cases := map[string]string{
		"no more options":        base + visit,
		"no visit options":       base + more,
		"too many visit options": base + more + four,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseContent([]byte(doc))
			assert.ErrorContains(t, err, "needs 1 to 3 options")
		})
	}

	_, err := ParseContent([]byte(base + more + visit))
	assert.NoError(t, err)
}
