package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCredentialIsEmpty(t *testing.T) {
	require.True(t, Credential{}.IsEmpty())
	require.False(t, Credential{WebID: "http://test.com/alice#me"}.IsEmpty())
	require.False(t, Credential{ClientID: "some-client"}.IsEmpty())
}

func TestCredentialSetGetDistinguishesAbsentFromEmpty(t *testing.T) {
	set := CredentialSet{GroupPublic: {}}

	cred, ok := set.Get(GroupPublic)
	require.True(t, ok)
	require.True(t, cred.IsEmpty())

	_, ok = set.Get(GroupAgent)
	require.False(t, ok)
}
