package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPlugin struct {
	mock.Mock
	cmd *cobra.Command
}

func (m *MockPlugin) Meta() *cobra.Command { return m.cmd }

func (m *MockPlugin) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	return m.Called(ctx, args).Error(0)
}

type ctxKey struct{}

func TestCLI_Dispatch(t *testing.T) {
	first := &MockPlugin{cmd: &cobra.Command{Use: "first"}}
	second := &MockPlugin{cmd: &cobra.Command{Use: "second"}}

	ctx := context.WithValue(context.Background(), ctxKey{}, "run")
	second.On("Execute", mock.MatchedBy(func(c context.Context) bool {
		return c.Value(ctxKey{}) == "run"
	}), []string{"a", "b"}).Return(nil)

	c := NewCLI(&cobra.Command{Use: "test", SilenceUsage: true})
	c.RegisterPlugin(first)
	c.RegisterPlugin(second)

	c.Root().SetArgs([]string{"second", "a", "b"})
	require.NoError(t, c.Run(ctx))

	second.AssertExpectations(t)
	first.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestCLI_Completion(t *testing.T) {
	c := NewCLI(&cobra.Command{Use: "test"})
	c.RegisterPlugin(&MockPlugin{cmd: &cobra.Command{Use: "check"}})

	var out bytes.Buffer
	c.Root().SetOut(&out)
	c.Root().SetArgs([]string{"completion", "zsh"})
	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "#compdef test")

	c.Root().SetArgs([]string{"completion", "tcsh"})
	c.Root().SetErr(&bytes.Buffer{})
	assert.Error(t, c.Run(context.Background()))
}
