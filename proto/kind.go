package proto

// Kind is the effect a server frame has on the client.
type Kind int

const (
	KindIgnored Kind = iota
	KindPushMap
	KindStartGame
)

var kindNames = []string{
	"ignored",
	"push map",
	"start game",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Classify maps an inbound action tag to its effect. Every tag other than
// ActionIgnored and ActionPushMap starts the game.
func Classify(action uint8) Kind {
	switch action {
	case ActionIgnored:
		return KindIgnored
	case ActionPushMap:
		return KindPushMap
	default:
		return KindStartGame
	}
}

// Known reports whether action is one of the enumerated server actions.
func Known(action uint8) bool {
	return action <= ActionStartGame
}
