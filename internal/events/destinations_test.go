package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_UserQueue_Format(t *testing.T) {
	req := require.New(t)
	req.Equal("user/bob/queue/messages", UserQueue("bob"))
}

func Test_Channel_Destination_RoundTrip(t *testing.T) {
	req := require.New(t)

	for _, destination := range []string{PublicDestination, UserQueue("alice")} {
		channel := ChannelFor(destination)
		got, ok := DestinationFromChannel(channel)
		req.True(ok)
		req.Equal(destination, got)
	}
}

func Test_DestinationFromChannel_Rejects_Foreign_Channels(t *testing.T) {
	req := require.New(t)

	_, ok := DestinationFromChannel("keyspace:expired")
	req.False(ok)
}
