package tcp

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vuuvv/vscpi/core"
	"github.com/vuuvv/vscpi/log"
	"go.uber.org/zap"
)

func init() {
	log.SetLogger(zap.NewNop())
	log.SetDefaultLogger(zap.NewNop())
}

func testFactory() (*core.Interpreter, error) {
	queue := core.NewStaticErrorQueue(10)
	r := core.NewRegistry()
	core.RegisterErrorCommands(r, queue)
	core.RegisterStandardCommands(r)
	r.Add("*IDN?", 0, func(ctx context.Context, args []core.Value) (any, error) {
		return core.Characters("vuuvv,vscpi,0,1.0.0"), nil
	})
	return r.Build(&core.Config{Queue: queue})
}

func TestServerSession(t *testing.T) {
	server := NewTCPServer(&ServerConfig{Address: "127.0.0.1:0"}, testFactory)
	go func() {
		_ = server.Start()
	}()
	defer func() {
		_ = server.Stop()
	}()

	var addr net.Addr
	for i := 0; i < 100; i++ {
		if addr = server.Addr(); addr != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NotNil(t, addr)

	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	reader := bufio.NewReader(conn)

	_, err = conn.Write([]byte("*IDN?\n"))
	require.NoError(t, err)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "vuuvv,vscpi,0,1.0.0\n", line)

	// A bad statement produces no output but lands in the session's
	// error queue.
	_, err = conn.Write([]byte("BAD:CMD\nSYST:ERR?\n"))
	require.NoError(t, err)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "-113,\"Undefined header\"\n", line)
}
