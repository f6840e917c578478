package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnectionRequestMetadata(t *testing.T) {
	testCases := []struct {
		name      string
		requester UserPublicProfile
		wantName  string
	}{
		{
			name: "full name",
			requester: UserPublicProfile{
				ID: "u1", Username: "jsmith", FirstName: "Jordan", LastName: "Smith",
			},
			wantName: "Jordan Smith",
		},
		{
			name: "first name only",
			requester: UserPublicProfile{
				ID: "u1", Username: "jsmith", FirstName: "Jordan",
			},
			wantName: "Jordan",
		},
		{
			name: "last name only",
			requester: UserPublicProfile{
				ID: "u1", Username: "jsmith", LastName: "Smith",
			},
			wantName: "Smith",
		},
		{
			name:      "no names",
			requester: UserPublicProfile{ID: "u1", Username: "jsmith"},
			wantName:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			metadata := NewConnectionRequestMetadata(&tc.requester)
			assert.Equal(t, tc.wantName, metadata.Name)
			assert.Equal(t, tc.requester.ID, metadata.RequestedBy)
			assert.Equal(t, tc.requester.Username, metadata.Username)
		})
	}
}

func TestConnectionRequestMetadataRoundTrip(t *testing.T) {
	original := ConnectionRequestMetadata{
		RequestedBy: "u1",
		Name:        "Jordan Smith",
		Username:    "jsmith",
		AvatarURL:   "/uploads/jsmith.png",
	}

	encoded, err := original.Encode()
	require.NoError(t, err)

	decoded, err := DecodeConnectionRequestMetadata(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeConnectionRequestMetadata_Invalid(t *testing.T) {
	_, err := DecodeConnectionRequestMetadata("not json")
	assert.Error(t, err)
}
