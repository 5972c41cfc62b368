package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	c := Load()
	assert.Equal(t, StoreDriverPostgres, c.StoreDriver)
	assert.Equal(t, 168*time.Hour, c.JWTTTL)
	assert.Equal(t, "notification_emails", c.RabbitMQNotificationQueue)
	assert.Equal(t, []string{"http://localhost:3000"}, c.CORSOrigins())
	assert.ErrorIs(t, c.Validate(), ErrMissingJWTSecret)

	t.Setenv("JWT_SECRET", "s")
	assert.NoError(t, Load().Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{JWTSecret: "s", JWTTTL: time.Hour, StoreDriver: StoreDriverMemory, CORSAllowedOrigins: "http://localhost:3000"}
	}
	assert.NoError(t, base().Validate())

	c := base()
	c.JWTSecret = "   "
	assert.ErrorIs(t, c.Validate(), ErrMissingJWTSecret)

	c = base()
	c.JWTTTL = 0
	assert.Error(t, c.Validate())

	c = base()
	c.StoreDriver = "sqlite"
	assert.Error(t, c.Validate())

	c = base()
	c.CORSAllowedOrigins = " , "
	assert.ErrorIs(t, c.Validate(), ErrNoCORSOrigins)
}

func TestListParsing(t *testing.T) {
	c := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test", ElasticsearchAddrs: ""}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSOrigins())
	assert.Empty(t, c.ESAddrs())
}
