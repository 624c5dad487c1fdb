package stdsql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zeptools/gw-sqltemplate/db/sqldb/sqldbmock"
	"go.uber.org/mock/gomock"
)

func TestProvider(t *testing.T) {
	t.Run("an uninitialized provider hands out nothing", func(t *testing.T) {
		p := &Provider{}
		conn, err := p.GetConn(context.Background())
		assert.Error(t, err)
		assert.Nil(t, conn)
	})
	t.Run("foreign connections are not released", func(t *testing.T) {
		p := &Provider{}
		foreign := sqldbmock.NewMockConn(gomock.NewController(t))
		assert.Error(t, p.ReleaseConn(context.Background(), foreign))
	})
}
