package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the session to a room.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the session from a room.
	CommandLeaveRoom
	// CommandSendMessage publishes a chat message to room members.
	CommandSendMessage
)

// Command represents an action requested by a client. The transport maps
// wire events onto commands before they reach the core.
type Command struct {
	Kind   CommandKind
	Room   string
	Author string
	Body   string
}
