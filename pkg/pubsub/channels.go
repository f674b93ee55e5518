package pubsub

import "fmt"

// Channel naming conventions for identifier audit events.
const (
	// ChannelAudit carries the envelopes minted for one entity label.
	ChannelAudit = "typedid:audit:%s"

	// ChannelAuditAll matches the audit channels of every label.
	ChannelAuditAll = "typedid:audit:*"

	// UnlabeledChannelKey stands in for the empty label in channel names.
	UnlabeledChannelKey = "_"
)

// Event types.
const (
	EventIDMinted = "id_minted"
)

// AuditChannel returns the audit channel for label.
func AuditChannel(label string) string {
	if label == "" {
		label = UnlabeledChannelKey
	}
	return fmt.Sprintf(ChannelAudit, label)
}
