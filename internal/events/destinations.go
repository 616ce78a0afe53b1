package events

import "strings"

// PublicDestination carries user status broadcasts to every connected
// client.
const PublicDestination = "user/public"

const channelPrefix = "channel:"

// UserQueue names the private delivery destination for a recipient.
func UserQueue(recipientID string) string {
	return "user/" + recipientID + "/queue/messages"
}

// ChannelFor maps a destination onto its broker channel.
func ChannelFor(destination string) string {
	return channelPrefix + destination
}

// ChannelPattern matches every destination channel on the broker.
func ChannelPattern() string {
	return channelPrefix + "*"
}

// DestinationFromChannel recovers the destination from a broker channel
// name. The second return is false for channels outside the prefix.
func DestinationFromChannel(channel string) (string, bool) {
	if !strings.HasPrefix(channel, channelPrefix) {
		return "", false
	}
	return strings.TrimPrefix(channel, channelPrefix), true
}
