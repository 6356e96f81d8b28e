package scroll

// Action classifies one raw keystroke.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionResume
	ActionPause
	ActionQuit
)

// Control bytes accepted alongside the letter keys.
const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

// DecodeKey maps a raw input byte to its scroll action. Bytes outside
// the key map decode to ActionNone and are ignored by the loop.
func DecodeKey(b byte) Action {
	switch b {
	case 'f', ' ':
		return ActionForward
	case 'b', keyBackspace, keyDelete:
		return ActionBackward
	case 'r':
		return ActionResume
	case 'p':
		return ActionPause
	case 'q', keyEscape, keyCtrlC, keyCtrlD:
		return ActionQuit
	default:
		return ActionNone
	}
}
