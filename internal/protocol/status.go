package protocol

import "fmt"

// StatusCode is a legacy wire-protocol status. Zero means success; the
// nonzero values are the error categories the legacy dialect reports as an
// integer "status" field and the spec-compliant dialect reports as an
// "error" string.
type StatusCode int

const (
	StatusSuccess               StatusCode = 0
	StatusNoSuchDriver          StatusCode = 6
	StatusNoSuchElement         StatusCode = 7
	StatusNoSuchFrame           StatusCode = 8
	StatusUnknownCommand        StatusCode = 9
	StatusStaleElementReference StatusCode = 10
	StatusElementNotVisible     StatusCode = 11
	StatusInvalidElementState   StatusCode = 12
	StatusUnknownError          StatusCode = 13
	StatusElementNotSelectable  StatusCode = 15
	StatusJavaScriptError       StatusCode = 17
	StatusXPathLookupError      StatusCode = 19
	StatusTimeout               StatusCode = 21
	StatusNoSuchWindow          StatusCode = 23
	StatusInvalidCookieDomain   StatusCode = 24
	StatusUnableToSetCookie     StatusCode = 25
	StatusUnexpectedAlertOpen   StatusCode = 26
	StatusNoAlertOpen           StatusCode = 27
	StatusScriptTimeout         StatusCode = 28
	StatusInvalidCoordinates    StatusCode = 29
	StatusInvalidSelector       StatusCode = 32
	StatusSessionNotCreated     StatusCode = 33
	StatusMoveTargetOutOfBounds StatusCode = 34

	// Codes below have no legacy integer on the wire; drivers that speak the
	// spec-compliant dialect report them only as error strings. The values
	// follow the de-facto numbering used by Chromium-based drivers.
	StatusElementNotInteractable  StatusCode = 60
	StatusInvalidArgument         StatusCode = 61
	StatusNoSuchCookie            StatusCode = 62
	StatusUnableToCaptureScreen   StatusCode = 63
	StatusElementClickIntercepted StatusCode = 64
)

// errorCodes is the closed table mapping spec-compliant "error" strings to
// their legacy status codes. A string outside this table fails the decode.
var errorCodes = map[string]StatusCode{
	"invalid session id":        StatusNoSuchDriver,
	"no such element":           StatusNoSuchElement,
	"no such frame":             StatusNoSuchFrame,
	"unknown command":           StatusUnknownCommand,
	"unknown method":            StatusUnknownCommand,
	"stale element reference":   StatusStaleElementReference,
	"element not visible":       StatusElementNotVisible,
	"invalid element state":     StatusInvalidElementState,
	"unknown error":             StatusUnknownError,
	"element not selectable":    StatusElementNotSelectable,
	"javascript error":          StatusJavaScriptError,
	"timeout":                   StatusTimeout,
	"no such window":            StatusNoSuchWindow,
	"invalid cookie domain":     StatusInvalidCookieDomain,
	"unable to set cookie":      StatusUnableToSetCookie,
	"unexpected alert open":     StatusUnexpectedAlertOpen,
	"no such alert":             StatusNoAlertOpen,
	"script timeout":            StatusScriptTimeout,
	"invalid coordinates":       StatusInvalidCoordinates,
	"invalid selector":          StatusInvalidSelector,
	"session not created":       StatusSessionNotCreated,
	"move target out of bounds": StatusMoveTargetOutOfBounds,
	"element not interactable":  StatusElementNotInteractable,
	"invalid argument":          StatusInvalidArgument,
	"no such cookie":            StatusNoSuchCookie,
	"unable to capture screen":  StatusUnableToCaptureScreen,
	"element click intercepted": StatusElementClickIntercepted,
}

var statusNames = map[StatusCode]string{
	StatusSuccess:                 "success",
	StatusNoSuchDriver:            "invalid session id",
	StatusNoSuchElement:           "no such element",
	StatusNoSuchFrame:             "no such frame",
	StatusUnknownCommand:          "unknown command",
	StatusStaleElementReference:   "stale element reference",
	StatusElementNotVisible:       "element not visible",
	StatusInvalidElementState:     "invalid element state",
	StatusUnknownError:            "unknown error",
	StatusElementNotSelectable:    "element not selectable",
	StatusJavaScriptError:         "javascript error",
	StatusXPathLookupError:        "invalid selector",
	StatusTimeout:                 "timeout",
	StatusNoSuchWindow:            "no such window",
	StatusInvalidCookieDomain:     "invalid cookie domain",
	StatusUnableToSetCookie:       "unable to set cookie",
	StatusUnexpectedAlertOpen:     "unexpected alert open",
	StatusNoAlertOpen:             "no such alert",
	StatusScriptTimeout:           "script timeout",
	StatusInvalidCoordinates:      "invalid coordinates",
	StatusInvalidSelector:         "invalid selector",
	StatusSessionNotCreated:       "session not created",
	StatusMoveTargetOutOfBounds:   "move target out of bounds",
	StatusElementNotInteractable:  "element not interactable",
	StatusInvalidArgument:         "invalid argument",
	StatusNoSuchCookie:            "no such cookie",
	StatusUnableToCaptureScreen:   "unable to capture screen",
	StatusElementClickIntercepted: "element click intercepted",
}

// StatusFromError looks up the legacy status code for a spec-compliant error
// string. ok is false when the string is outside the known table.
func StatusFromError(name string) (StatusCode, bool) {
	code, ok := errorCodes[name]
	return code, ok
}

func (s StatusCode) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status %d", int(s))
}
