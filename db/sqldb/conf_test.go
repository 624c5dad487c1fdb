package sqldb

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfSetDefaults(t *testing.T) {
	var conf Conf
	require.NoError(t, json.Unmarshal([]byte(`{"type":"pgsql","host":"db","max_open_conns":25}`), &conf))
	require.NoError(t, conf.SetDefaults())
	assert.Equal(t, 25, conf.MaxOpenConns)
	assert.Equal(t, 10, conf.MaxIdleConns)
	assert.Equal(t, 2, conf.MinConns)
	assert.Equal(t, 3*time.Minute, conf.ConnMaxLifetime())
}

type stubClient struct {
	Client
	conf *Conf
}

func (c *stubClient) GetConf() *Conf { return c.conf }

func (c *stubClient) Ping(context.Context) error { return nil }

func TestNew(t *testing.T) {
	RegisterFactory("stub", func(conf *Conf) (Client, error) {
		return &stubClient{conf: conf}, nil
	})
	t.Cleanup(func() {
		registryMu.Lock()
		delete(registry, "stub")
		registryMu.Unlock()
	})

	client, err := New(&Conf{Type: "stub"})
	require.NoError(t, err)
	assert.Equal(t, 10, client.GetConf().MaxOpenConns)
	assert.Contains(t, RegisteredTypes(), "stub")

	_, err = New(&Conf{Type: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
