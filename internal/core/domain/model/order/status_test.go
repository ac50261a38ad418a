package order_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Unknown:    "UNKNOWN",
		order.Pending:    "PENDIENTE",
		order.Preparing:  "PREPARANDO",
		order.Dispatched: "DESPACHADO",
		order.Delivered:  "ENTREGADO",
		order.Cancelled:  "CANCELADO",
		order.Returned:   "DEVUELTO",
	}
	for status, name := range cases {
		assert.Equal(t, name, status.String())
	}

	assert.Equal(t, "UNKNOWN", order.Status(99).String())
}

func TestStatusFromName(t *testing.T) {
	t.Run("should parse every valid wire name", func(t *testing.T) {
		for _, name := range []string{"PENDIENTE", "PREPARANDO", "DESPACHADO", "ENTREGADO", "CANCELADO", "DEVUELTO"} {
			status, err := order.StatusFromName(name)
			require.NoError(t, err)
			assert.Equal(t, name, status.String())
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "UNKNOWN", "pendiente", "SHIPPED"} {
			_, err := order.StatusFromName(name)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "name %q", name)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range []order.Status{order.Pending, order.Preparing, order.Dispatched, order.Delivered, order.Cancelled, order.Returned} {
		require.NoError(t, status.Validate())
	}

	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, status := range []order.Status{order.Pending, order.Preparing, order.Dispatched, order.Returned} {
		assert.False(t, status.IsTerminal(), "status %s", status)
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	all := []order.Status{order.Pending, order.Preparing, order.Dispatched, order.Delivered, order.Cancelled, order.Returned}

	// The complete legality matrix: everything not listed here must fail.
	allowed := map[order.Status][]order.Status{
		order.Pending:    {order.Preparing, order.Dispatched, order.Cancelled, order.Returned},
		order.Preparing:  {order.Pending, order.Dispatched, order.Cancelled, order.Returned},
		order.Dispatched: {order.Delivered, order.Cancelled, order.Returned},
		order.Delivered:  {},
		order.Cancelled:  {},
		order.Returned:   {order.Dispatched, order.Cancelled},
	}

	isAllowed := func(from, to order.Status) bool {
		for _, s := range allowed[from] {
			if s == to {
				return true
			}
		}
		return false
	}

	t.Run("matrix completeness: every disallowed pair fails with a typed error", func(t *testing.T) {
		for _, from := range all {
			for _, to := range all {
				next, err := from.TransitionTo(to)
				if isAllowed(from, to) {
					require.NoError(t, err, "%s -> %s should be legal", from, to)
					assert.Equal(t, to, next)
					continue
				}

				require.Error(t, err, "%s -> %s should be illegal", from, to)
				assert.True(t, isConflict(err) || isForbidden(err),
					"%s -> %s must fail as conflict or forbidden, got %v", from, to, err)
			}
		}
	})

	t.Run("same-status transitions fail as conflicts", func(t *testing.T) {
		for _, s := range all {
			_, err := s.TransitionTo(s)
			require.ErrorIs(t, err, errs.ErrStateConflict, "status %s", s)
		}
	})

	t.Run("terminal statuses allow nothing", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
			for _, to := range all {
				if to == terminal {
					continue
				}
				_, err := terminal.TransitionTo(to)
				require.ErrorIs(t, err, errs.ErrStateConflict, "%s -> %s", terminal, to)
			}
		}
	})

	t.Run("delivery requires dispatch", func(t *testing.T) {
		for _, from := range []order.Status{order.Pending, order.Preparing, order.Returned} {
			_, err := from.TransitionTo(order.Delivered)
			require.ErrorIs(t, err, errs.ErrTransitionForbidden, "from %s", from)
		}

		next, err := order.Dispatched.TransitionTo(order.Delivered)
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, next)
	})

	t.Run("invalid target status is rejected", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_RequiresDescription(t *testing.T) {
	assert.True(t, order.Cancelled.RequiresDescription())
	assert.True(t, order.Returned.RequiresDescription())

	for _, status := range []order.Status{order.Pending, order.Preparing, order.Dispatched, order.Delivered} {
		assert.False(t, status.RequiresDescription(), "status %s", status)
	}
}

func isConflict(err error) bool {
	return errors.Is(err, errs.ErrStateConflict)
}

func isForbidden(err error) bool {
	return errors.Is(err, errs.ErrTransitionForbidden)
}
