package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconBook      = "\U000F00BA" // 󰂺
	IconSearch    = ""
	IconComment   = ""
	IconTag       = ""
	IconLink      = ""
	IconLock      = ""
	IconSidebar   = ""
	IconSplit     = ""
	IconHighlight = "\U000F0652" // 󰙒
	IconUnderline = ""
)

// Notification icons
var (
	IconNotifyInfo    = ""
	IconNotifyWarning = ""
	IconNotifyError   = ""
)
