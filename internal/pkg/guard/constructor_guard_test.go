package guard_test

import (
	"errors"
	"testing"

	"github.com/Shmhzr/ai-voice/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemArgs struct {
	flavor string
	guard  guard.ConstructorGuard
}

var errAddItemArgsNotConstructed = errors.New("addItemArgs must be created via newAddItemArgs")

func newAddItemArgs(flavor string) addItemArgs {
	return addItemArgs{flavor: flavor, guard: guard.NewConstructorGuard()}
}

func (a addItemArgs) Validate() error {
	return a.guard.Validate(errAddItemArgsNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_passes_with_custom_error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
	})

	t.Run("constructed_guard_passes_with_nil_error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("cart item not constructed")

		err := g.Validate(expected)

		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	t.Run("constructor_built_value_is_valid", func(t *testing.T) {
		args := newAddItemArgs("Margherita")

		require.NoError(t, args.Validate())
		assert.Equal(t, "Margherita", args.flavor)
	})

	t.Run("struct_literal_is_rejected", func(t *testing.T) {
		args := addItemArgs{flavor: "Margherita"}

		require.ErrorIs(t, args.Validate(), errAddItemArgsNotConstructed)
	})

	t.Run("copies_keep_the_guard", func(t *testing.T) {
		original := newAddItemArgs("Farmhouse")
		copied := original

		require.NoError(t, copied.Validate())
	})
}
