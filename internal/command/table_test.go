package command

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(_ context.Context, args json.RawMessage) (any, error) {
	return string(args), nil
}

func TestTable_Register(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(tbl *Table)
		command string
		handler Handler
		wantErr error
	}{
		{
			name:    "NewName_ShouldSucceed",
			command: "greet",
			handler: echo,
		},
		{
			name:    "EmptyName_ShouldFail",
			command: "",
			handler: echo,
			wantErr: ErrInvalid,
		},
		{
			name:    "NilHandler_ShouldFail",
			command: "greet",
			wantErr: ErrInvalid,
		},
		{
			name:    "Duplicate_ShouldFail",
			setup:   func(tbl *Table) { _ = tbl.Register("greet", echo) },
			command: "greet",
			handler: echo,
			wantErr: ErrDuplicate,
		},
		{
			name:    "AfterFreeze_ShouldFail",
			setup:   func(tbl *Table) { tbl.Freeze() },
			command: "greet",
			handler: echo,
			wantErr: ErrFrozen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable()
			if tt.setup != nil {
				tt.setup(tbl)
			}

			err := tbl.Register(tt.command, tt.handler)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tbl.Has(tt.command))
		})
	}
}

func TestTable_DuplicateKeepsOriginalHandler(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Register("greet", func(context.Context, json.RawMessage) (any, error) {
		return "first", nil
	}))
	err := tbl.Register("greet", func(context.Context, json.RawMessage) (any, error) {
		return "second", nil
	})
	require.ErrorIs(t, err, ErrDuplicate)

	got, err := tbl.Invoke(context.Background(), "greet", nil)
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}

func TestTable_RegisterAllStopsAtFirstFailure(t *testing.T) {
	tbl := NewTable()
	err := tbl.RegisterAll(
		Entry{Name: "a", Handler: echo},
		Entry{Name: "a", Handler: echo},
		Entry{Name: "b", Handler: echo},
	)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, []string{"a"}, tbl.Names())
}

func TestTable_NamesKeepRegistrationOrder(t *testing.T) {
	tbl := NewTable()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, tbl.Register(n, echo))
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, tbl.Names())
}

func TestTable_InvokeUnknown(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Register("greet", echo))

	_, err := tbl.Invoke(context.Background(), "gret", nil)
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), `did you mean "greet"?`)

	_, err = tbl.Invoke(context.Background(), "shutdown", nil)
	assert.ErrorIs(t, err, ErrUnknown)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestTable_ConcurrentInvokeAfterFreeze(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Register("echo", echo))
	tbl.Freeze()
	require.True(t, tbl.Frozen())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := tbl.Invoke(context.Background(), "echo", json.RawMessage(`{"x":1}`))
			assert.NoError(t, err)
			assert.Equal(t, `{"x":1}`, got)
		}()
	}
	wg.Wait()
}

type pair struct {
	Name string `json:"name"`
}

func TestTyped(t *testing.T) {
	h := Typed(func(_ context.Context, p pair) (string, error) {
		return "got " + p.Name, nil
	})

	got, err := h(context.Background(), Args(map[string]string{"name": "pad"}))
	require.NoError(t, err)
	assert.Equal(t, "got pad", got)

	got, err = h(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "got ", got)

	got, err = h(context.Background(), json.RawMessage("null"))
	require.NoError(t, err)
	assert.Equal(t, "got ", got)

	_, err = h(context.Background(), json.RawMessage(`{"name":`))
	assert.ErrorIs(t, err, ErrBadArgs)
}
