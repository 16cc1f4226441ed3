package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTriStateCombineDenyIsAbsorbing(t *testing.T) {
	require.Equal(t, Deny, Deny.Combine(Allow))
	require.Equal(t, Deny, Allow.Combine(Deny))
	require.Equal(t, Deny, Deny.Combine(Undefined))
	require.Equal(t, Deny, Deny.Combine(Deny))
}

func TestTriStateCombineAllowBeatsUndefined(t *testing.T) {
	require.Equal(t, Allow, Allow.Combine(Undefined))
	require.Equal(t, Allow, Undefined.Combine(Allow))
}

func TestTriStateCombineUndefinedIsIdentity(t *testing.T) {
	require.Equal(t, Undefined, Undefined.Combine(Undefined))
}

func TestPermissionWithNeverMutatesReceiver(t *testing.T) {
	base := NewPermission().With("read", Allow)
	derived := base.With("write", Allow)

	require.Equal(t, Allow, base.Get("read"))
	require.Equal(t, Undefined, base.Get("write"))
	require.Equal(t, Allow, derived.Get("read"))
	require.Equal(t, Allow, derived.Get("write"))
}

func TestPermissionGetOnNilIsUndefined(t *testing.T) {
	var p Permission
	require.Equal(t, Undefined, p.Get("read"))
}

func TestPermissionMergeCombinesPerMode(t *testing.T) {
	a := NewPermission().With("read", Allow).With("write", Deny)
	b := NewPermission().With("read", Undefined).With("append", Allow)

	merged := a.Merge(b)
	require.Equal(t, Allow, merged.Get("read"))
	require.Equal(t, Deny, merged.Get("write"))
	require.Equal(t, Allow, merged.Get("append"))
}

func TestAllowAllGrantsEveryGivenMode(t *testing.T) {
	p := AllowAll("read", "write")
	require.Equal(t, Allow, p.Get("read"))
	require.Equal(t, Allow, p.Get("write"))
	require.Equal(t, Undefined, p.Get("control"))
}
